package metrics

import (
	"context"

	"github.com/openlot/parkd/core/events"
	"github.com/openlot/parkd/core/logger"
	coremetrics "github.com/openlot/parkd/core/metrics"
	"github.com/openlot/parkd/core/model"
	"github.com/openlot/parkd/internal/eventbus"
)

// Collector consumes session events from the bus and forwards them to a
// metrics sink, refreshing the occupancy gauges after every event. It is the
// asynchronous notification channel between the engine and monitoring.
type Collector struct {
	bus      *eventbus.Bus
	sink     coremetrics.MetricsSink
	snapshot func() model.OccupancySnapshot
	log      logger.Logger
}

// NewCollector creates a collector. snapshot supplies the current occupancy,
// typically Engine.Occupancy.
func NewCollector(bus *eventbus.Bus, sink coremetrics.MetricsSink, snapshot func() model.OccupancySnapshot, log logger.Logger) *Collector {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	return &Collector{bus: bus, sink: sink, snapshot: snapshot, log: log}
}

// Run consumes events until the context is canceled or the bus closes.
func (c *Collector) Run(ctx context.Context) {
	sub := c.bus.Subscribe(0)
	defer sub.Cancel()
	for {
		select {
		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			c.record(ev)
		case <-ctx.Done():
			return
		}
	}
}

func (c *Collector) record(ev events.SessionEvent) {
	var err error
	switch ev.Kind {
	case events.Entry:
		err = c.sink.RecordSessionOpened(ev.Ticket)
	case events.Exit:
		err = c.sink.RecordSessionClosed(ev.Ticket)
	}
	if err != nil && c.log != nil {
		c.log.Errorf("record %s event: %v", ev.Kind, err)
	}
	if c.snapshot != nil {
		if err := c.sink.RecordOccupancy(c.snapshot()); err != nil && c.log != nil {
			c.log.Errorf("record occupancy: %v", err)
		}
	}
}
