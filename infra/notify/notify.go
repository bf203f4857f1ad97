// Package notify provides the event sinks wired into the parking engine:
// structured logging, metrics recording, event-bus fan-out and MQTT
// publication.
package notify

import (
	"encoding/json"
	"time"

	"github.com/openlot/parkd/core/events"
	"github.com/openlot/parkd/core/logger"
	coremetrics "github.com/openlot/parkd/core/metrics"
	"github.com/openlot/parkd/core/model"
	"github.com/openlot/parkd/infra/mqtt"
	"github.com/openlot/parkd/internal/eventbus"
)

// LogSink logs every session entry and exit.
type LogSink struct {
	log logger.Logger
}

// NewLogSink creates a logging sink.
func NewLogSink(log logger.Logger) *LogSink {
	return &LogSink{log: log}
}

// OnEntry implements parking.EventSink.
func (s *LogSink) OnEntry(t model.Ticket) error {
	s.log.Infof("entry: vehicle %s ticket %s space %s", t.VehicleID, t.ID, t.SpaceID)
	return nil
}

// OnExit implements parking.EventSink.
func (s *LogSink) OnExit(t model.Ticket) error {
	s.log.Infof("exit: vehicle %s ticket %s space %s charge %.2f", t.VehicleID, t.ID, t.SpaceID, t.Charge)
	return nil
}

// MetricsSink forwards session events to a metrics sink synchronously and
// refreshes the occupancy gauges. Use BusSink plus the metrics collector for
// asynchronous recording instead.
type MetricsSink struct {
	sink     coremetrics.MetricsSink
	snapshot func() model.OccupancySnapshot
}

// NewMetricsSink creates a metrics-recording sink. snapshot supplies the
// current occupancy, typically Engine.Occupancy.
func NewMetricsSink(sink coremetrics.MetricsSink, snapshot func() model.OccupancySnapshot) *MetricsSink {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	return &MetricsSink{sink: sink, snapshot: snapshot}
}

// OnEntry implements parking.EventSink.
func (s *MetricsSink) OnEntry(t model.Ticket) error {
	if err := s.sink.RecordSessionOpened(t); err != nil {
		return err
	}
	return s.recordOccupancy()
}

// OnExit implements parking.EventSink.
func (s *MetricsSink) OnExit(t model.Ticket) error {
	if err := s.sink.RecordSessionClosed(t); err != nil {
		return err
	}
	return s.recordOccupancy()
}

func (s *MetricsSink) recordOccupancy() error {
	if s.snapshot == nil {
		return nil
	}
	return s.sink.RecordOccupancy(s.snapshot())
}

// BusSink publishes session events onto the internal event bus for
// asynchronous consumers.
type BusSink struct {
	bus *eventbus.Bus
}

// NewBusSink creates a bus-publishing sink.
func NewBusSink(bus *eventbus.Bus) *BusSink {
	return &BusSink{bus: bus}
}

// OnEntry implements parking.EventSink.
func (s *BusSink) OnEntry(t model.Ticket) error {
	s.bus.Publish(events.SessionEvent{Kind: events.Entry, Ticket: t, Time: time.Now()})
	return nil
}

// OnExit implements parking.EventSink.
func (s *BusSink) OnExit(t model.Ticket) error {
	s.bus.Publish(events.SessionEvent{Kind: events.Exit, Ticket: t, Time: time.Now()})
	return nil
}

// MQTTSink publishes session events as JSON to the entry and exit topics.
type MQTTSink struct {
	pub    mqtt.Publisher
	prefix string
}

// NewMQTTSink creates an MQTT-publishing sink.
func NewMQTTSink(pub mqtt.Publisher, topicPrefix string) *MQTTSink {
	if topicPrefix == "" {
		topicPrefix = "parkd/events"
	}
	return &MQTTSink{pub: pub, prefix: topicPrefix}
}

// OnEntry implements parking.EventSink.
func (s *MQTTSink) OnEntry(t model.Ticket) error {
	return s.publish(s.prefix+"/entry", t)
}

// OnExit implements parking.EventSink.
func (s *MQTTSink) OnExit(t model.Ticket) error {
	return s.publish(s.prefix+"/exit", t)
}

func (s *MQTTSink) publish(topic string, t model.Ticket) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return s.pub.Publish(topic, payload)
}
