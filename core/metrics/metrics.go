package metrics

import (
	"errors"

	"github.com/openlot/parkd/core/factory"
	"github.com/openlot/parkd/core/model"
)

// MetricsSink records parking activity for monitoring collaborators.
type MetricsSink interface {
	RecordSessionOpened(t model.Ticket) error
	RecordSessionClosed(t model.Ticket) error
	RecordOccupancy(s model.OccupancySnapshot) error
}

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
}

// NopSink discards all metrics.
type NopSink struct{}

func (NopSink) RecordSessionOpened(model.Ticket) error        { return nil }
func (NopSink) RecordSessionClosed(model.Ticket) error        { return nil }
func (NopSink) RecordOccupancy(model.OccupancySnapshot) error { return nil }

// MultiSink fans records out to several sinks, collecting every error.
type MultiSink struct {
	sinks []MetricsSink
}

// NewMultiSink combines the given sinks into one.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordSessionOpened(t model.Ticket) error {
	var errs []error
	for _, s := range m.sinks {
		errs = append(errs, s.RecordSessionOpened(t))
	}
	return errors.Join(errs...)
}

func (m *MultiSink) RecordSessionClosed(t model.Ticket) error {
	var errs []error
	for _, s := range m.sinks {
		errs = append(errs, s.RecordSessionClosed(t))
	}
	return errors.Join(errs...)
}

func (m *MultiSink) RecordOccupancy(snap model.OccupancySnapshot) error {
	var errs []error
	for _, s := range m.sinks {
		errs = append(errs, s.RecordOccupancy(snap))
	}
	return errors.Join(errs...)
}
