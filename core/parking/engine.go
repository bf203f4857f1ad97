package parking

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openlot/parkd/core/logger"
	"github.com/openlot/parkd/core/model"
)

// Engine orchestrates the space inventory, the active pricing strategy and
// the registered event sinks. It serves concurrent callers; an engine
// instance owns its session state and ticket id generator so multiple
// facilities can run independent engines.
type Engine struct {
	inv *SpaceInventory
	log logger.Logger

	mu     sync.Mutex
	active map[string]model.Ticket // vehicle id -> open session
	closed []model.Ticket
	sinks  []EventSink

	strategyMu sync.RWMutex
	strategy   PricingStrategy

	// notifyMu serializes sink fan-out so sinks never receive two
	// notifications concurrently.
	notifyMu sync.Mutex

	// entryDone holds, per open session, a channel closed once the entry
	// fan-out has finished. Retrieve waits on it so a session's exit
	// notifications never overtake its entry notifications.
	entryDone map[string]chan struct{}

	now   func() time.Time
	newID func() string
}

// NewEngine creates an engine over the given inventory with an initial
// pricing strategy. A nil logger disables logging.
func NewEngine(inv *SpaceInventory, strategy PricingStrategy, log logger.Logger) (*Engine, error) {
	if inv == nil || strategy == nil {
		return nil, fmt.Errorf("parking: nil parameter provided to NewEngine")
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &Engine{
		inv:       inv,
		log:       log,
		active:    make(map[string]model.Ticket),
		entryDone: make(map[string]chan struct{}),
		strategy:  strategy,
		now:       time.Now,
		newID:     uuid.NewString,
	}, nil
}

// Inventory returns the engine's space inventory.
func (e *Engine) Inventory() *SpaceInventory { return e.inv }

// Park allocates a space for the vehicle, opens a session and notifies the
// registered sinks. Exactly one of several concurrent Park calls for the
// same vehicle id, or for the last free space, can succeed.
func (e *Engine) Park(v model.Vehicle) (ParkResult, error) {
	if err := v.Validate(); err != nil {
		return ParkResult{}, err
	}

	e.mu.Lock()
	if _, ok := e.active[v.ID]; ok {
		e.mu.Unlock()
		return ParkResult{}, fmt.Errorf("vehicle %s: %w", v.ID, ErrVehicleAlreadyParked)
	}
	ticketID := e.newID()
	sp, err := e.inv.Allocate(v.Size, ticketID)
	if err != nil {
		e.mu.Unlock()
		return ParkResult{}, fmt.Errorf("park %s: %w", v.ID, err)
	}
	t := model.Ticket{
		ID:          ticketID,
		VehicleID:   v.ID,
		VehicleSize: v.Size,
		SpaceID:     sp.ID,
		EntryTime:   e.now(),
	}
	e.active[v.ID] = t
	entryDone := make(chan struct{})
	e.entryDone[t.ID] = entryDone
	sinks := e.sinksLocked()
	e.mu.Unlock()

	e.log.Infof("vehicle %s parked in space %s (ticket %s)", v.ID, sp.ID, t.ID)
	errs := e.notify(sinks, t, true)
	close(entryDone)
	return ParkResult{Ticket: t, SinkErrors: errs}, nil
}

// Retrieve closes the vehicle's open session, computes the charge with the
// active pricing strategy, releases the space and notifies the sinks.
func (e *Engine) Retrieve(vehicleID string) (RetrieveResult, error) {
	e.mu.Lock()
	t, ok := e.active[vehicleID]
	if !ok {
		e.mu.Unlock()
		return RetrieveResult{}, fmt.Errorf("vehicle %s: %w", vehicleID, ErrNoActiveSession)
	}
	t.ExitTime = e.now()
	if t.ExitTime.Before(t.EntryTime) {
		// Clock skew; the exit timestamp must never precede entry.
		t.ExitTime = t.EntryTime
	}
	t.Charge = e.calculateFee(t)
	if err := e.inv.Release(t.SpaceID); err != nil {
		// The inventory can only disagree with the session index through a
		// bug; the session is still closed to keep the caller unblocked.
		e.log.Errorf("release space %s: %v", t.SpaceID, err)
	}
	delete(e.active, vehicleID)
	entryDone := e.entryDone[t.ID]
	delete(e.entryDone, t.ID)
	e.closed = append(e.closed, t)
	sinks := e.sinksLocked()
	e.mu.Unlock()

	if entryDone != nil {
		<-entryDone
	}
	e.log.Infof("vehicle %s retrieved from space %s, charge %.2f", vehicleID, t.SpaceID, t.Charge)
	errs := e.notify(sinks, t, false)
	return RetrieveResult{Ticket: t, SinkErrors: errs}, nil
}

func (e *Engine) calculateFee(t model.Ticket) float64 {
	e.strategyMu.RLock()
	s := e.strategy
	e.strategyMu.RUnlock()
	fee := s.CalculateFee(t)
	if fee < 0 {
		e.log.Warnf("strategy %s returned negative fee %.2f for ticket %s", s.Name(), fee, t.ID)
		return 0
	}
	return fee
}

// SetPricingStrategy replaces the strategy used by subsequent Retrieve
// calls. Sessions already closed keep their charge.
func (e *Engine) SetPricingStrategy(s PricingStrategy) error {
	if s == nil {
		return fmt.Errorf("parking: nil pricing strategy")
	}
	e.strategyMu.Lock()
	old := e.strategy
	e.strategy = s
	e.strategyMu.Unlock()
	e.log.Infof("pricing strategy changed from %s to %s", old.Name(), s.Name())
	return nil
}

// StrategyName returns the name of the active pricing strategy.
func (e *Engine) StrategyName() string {
	e.strategyMu.RLock()
	defer e.strategyMu.RUnlock()
	return e.strategy.Name()
}

// RegisterSink adds an event sink. Registration order determines
// notification order; registering the same sink twice yields duplicate
// notifications.
func (e *Engine) RegisterSink(s EventSink) {
	if s == nil {
		return
	}
	e.mu.Lock()
	e.sinks = append(e.sinks, s)
	e.mu.Unlock()
}

// UnregisterSink removes the first registration of the given sink. Sinks
// are matched by interface equality, so a sink of an uncomparable dynamic
// type cannot be matched and stays registered.
func (e *Engine) UnregisterSink(s EventSink) {
	if s == nil || !reflect.TypeOf(s).Comparable() {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, reg := range e.sinks {
		if reg == s {
			e.sinks = append(e.sinks[:i], e.sinks[i+1:]...)
			return
		}
	}
}

func (e *Engine) sinksLocked() []EventSink {
	out := make([]EventSink, len(e.sinks))
	copy(out, e.sinks)
	return out
}

// notify fans the event out to every sink in registration order. A failing
// or panicking sink is logged and recorded but never interrupts the others.
func (e *Engine) notify(sinks []EventSink, t model.Ticket, entry bool) []error {
	if len(sinks) == 0 {
		return nil
	}
	e.notifyMu.Lock()
	defer e.notifyMu.Unlock()
	var errs []error
	for idx, s := range sinks {
		if err := e.notifyOne(s, t, entry); err != nil {
			event := "exit"
			if entry {
				event = "entry"
			}
			e.log.Errorf("sink %d %s notification: %v", idx, event, err)
			errs = append(errs, fmt.Errorf("sink %d: %w", idx, err))
		}
	}
	return errs
}

func (e *Engine) notifyOne(s EventSink, t model.Ticket, entry bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink panic: %v", r)
		}
	}()
	if entry {
		return s.OnEntry(t)
	}
	return s.OnExit(t)
}

// Occupancy returns the current inventory snapshot for monitoring.
func (e *Engine) Occupancy() model.OccupancySnapshot {
	return e.inv.Snapshot()
}

// ActiveSessions returns copies of all open sessions.
func (e *Engine) ActiveSessions() []model.Ticket {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Ticket, 0, len(e.active))
	for _, t := range e.active {
		out = append(out, t)
	}
	return out
}

// ClosedSessions returns copies of all completed sessions.
func (e *Engine) ClosedSessions() []model.Ticket {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Ticket, len(e.closed))
	copy(out, e.closed)
	return out
}

// TotalRevenue sums the charges of all completed sessions.
func (e *Engine) TotalRevenue() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	var sum float64
	for _, t := range e.closed {
		sum += t.Charge
	}
	return sum
}

// RevenueBySize breaks total revenue down by the vehicles' size class.
func (e *Engine) RevenueBySize() map[model.SpaceSize]float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[model.SpaceSize]float64)
	for _, t := range e.closed {
		out[t.VehicleSize] += t.Charge
	}
	return out
}
