package parking

import (
	"fmt"
	"sync"

	"github.com/openlot/parkd/core/model"
)

// SpaceInventory owns the set of parking spaces and their occupancy status.
// All methods are safe for concurrent use; Allocate performs find-and-occupy
// as a single atomic step so two concurrent allocations can never win the
// same space.
type SpaceInventory struct {
	mu     sync.Mutex
	spaces map[string]*model.Space
	// order keeps space ids per size in registration order so allocation is
	// deterministic when several equally sized spaces are free.
	order map[model.SpaceSize][]string
}

// NewSpaceInventory returns an empty inventory.
func NewSpaceInventory() *SpaceInventory {
	return &SpaceInventory{
		spaces: make(map[string]*model.Space),
		order:  make(map[model.SpaceSize][]string),
	}
}

// AddSpace registers a new space. The space is stored as available unless the
// definition carries another status (for example maintenance seed data).
func (i *SpaceInventory) AddSpace(sp model.Space) error {
	if err := sp.Validate(); err != nil {
		return err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, ok := i.spaces[sp.ID]; ok {
		return fmt.Errorf("space %s: %w", sp.ID, ErrDuplicateSpaceID)
	}
	sp.TicketID = ""
	if sp.Status == model.StatusOccupied {
		sp.Status = model.StatusAvailable
	}
	cp := sp
	i.spaces[sp.ID] = &cp
	i.order[sp.Size] = append(i.order[sp.Size], sp.ID)
	return nil
}

// AddSpaces registers multiple spaces, stopping at the first failure.
func (i *SpaceInventory) AddSpaces(spaces []model.Space) error {
	for _, sp := range spaces {
		if err := i.AddSpace(sp); err != nil {
			return err
		}
	}
	return nil
}

// FindAvailable returns one available space whose size is the smallest size
// able to hold the required size. Ties are broken by registration order.
func (i *SpaceInventory) FindAvailable(required model.SpaceSize) (model.Space, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	sp := i.findLocked(required)
	if sp == nil {
		return model.Space{}, fmt.Errorf("size %s: %w", required, ErrNoSpaceAvailable)
	}
	return *sp, nil
}

// Allocate finds the best-fit available space for the required size and
// occupies it with the given ticket in one atomic step.
func (i *SpaceInventory) Allocate(required model.SpaceSize, ticketID string) (model.Space, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	sp := i.findLocked(required)
	if sp == nil {
		return model.Space{}, fmt.Errorf("size %s: %w", required, ErrNoSpaceAvailable)
	}
	sp.Status = model.StatusOccupied
	sp.TicketID = ticketID
	return *sp, nil
}

func (i *SpaceInventory) findLocked(required model.SpaceSize) *model.Space {
	for _, size := range model.Sizes() {
		if !size.Fits(required) {
			continue
		}
		for _, id := range i.order[size] {
			if sp := i.spaces[id]; sp.Available() {
				return sp
			}
		}
	}
	return nil
}

// Occupy transitions a space from available to occupied on behalf of the
// given ticket.
func (i *SpaceInventory) Occupy(spaceID, ticketID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	sp, ok := i.spaces[spaceID]
	if !ok {
		return fmt.Errorf("space %s: %w", spaceID, ErrUnknownSpace)
	}
	if !sp.Available() {
		return fmt.Errorf("space %s is %s: %w", spaceID, sp.Status, ErrSpaceNotAvailable)
	}
	sp.Status = model.StatusOccupied
	sp.TicketID = ticketID
	return nil
}

// Release transitions a space from occupied back to available.
func (i *SpaceInventory) Release(spaceID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	sp, ok := i.spaces[spaceID]
	if !ok {
		return fmt.Errorf("space %s: %w", spaceID, ErrUnknownSpace)
	}
	if sp.Status != model.StatusOccupied {
		return fmt.Errorf("space %s is %s: %w", spaceID, sp.Status, ErrSpaceNotOccupied)
	}
	sp.Status = model.StatusAvailable
	sp.TicketID = ""
	return nil
}

// SetOutOfService takes an available space out of rotation for maintenance.
func (i *SpaceInventory) SetOutOfService(spaceID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	sp, ok := i.spaces[spaceID]
	if !ok {
		return fmt.Errorf("space %s: %w", spaceID, ErrUnknownSpace)
	}
	if !sp.Available() {
		return fmt.Errorf("space %s is %s: %w", spaceID, sp.Status, ErrSpaceNotAvailable)
	}
	sp.Status = model.StatusMaintenance
	return nil
}

// ReturnToService puts a maintenance space back in rotation.
func (i *SpaceInventory) ReturnToService(spaceID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	sp, ok := i.spaces[spaceID]
	if !ok {
		return fmt.Errorf("space %s: %w", spaceID, ErrUnknownSpace)
	}
	if sp.Status != model.StatusMaintenance {
		return fmt.Errorf("space %s is %s: %w", spaceID, sp.Status, ErrSpaceNotAvailable)
	}
	sp.Status = model.StatusAvailable
	return nil
}

// Spaces returns a copy of every registered space in registration order.
func (i *SpaceInventory) Spaces() []model.Space {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]model.Space, 0, len(i.spaces))
	for _, size := range model.Sizes() {
		for _, id := range i.order[size] {
			out = append(out, *i.spaces[id])
		}
	}
	return out
}

// Snapshot returns occupancy counts at a single consistent point in time.
func (i *SpaceInventory) Snapshot() model.OccupancySnapshot {
	i.mu.Lock()
	defer i.mu.Unlock()
	snap := model.OccupancySnapshot{
		BySize: make(map[model.SpaceSize]model.OccupancyCount, len(model.Sizes())),
	}
	for _, size := range model.Sizes() {
		snap.BySize[size] = model.OccupancyCount{}
	}
	for _, sp := range i.spaces {
		c := snap.BySize[sp.Size]
		c.Total++
		snap.Overall.Total++
		switch sp.Status {
		case model.StatusOccupied:
			c.Occupied++
			snap.Overall.Occupied++
		case model.StatusAvailable:
			c.Available++
			snap.Overall.Available++
		}
		snap.BySize[sp.Size] = c
	}
	return snap
}
