package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/openlot/parkd/core/metrics"
	"github.com/openlot/parkd/core/model"
)

// PromSink records parking activity in Prometheus metrics.
type PromSink struct {
	sessions  *prometheus.CounterVec
	duration  prometheus.Histogram
	revenue   prometheus.Counter
	occupied  *prometheus.GaugeVec
	available *prometheus.GaugeVec
}

// NewPromSink registers parking metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using StartPromServer.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	sessions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "parkd_session_events_total",
		Help: "Total number of session entry and exit events",
	}, []string{"event", "size"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "parkd_session_duration_hours",
		Help:    "Length of completed parking sessions in hours",
		Buckets: []float64{0.5, 1, 2, 4, 8, 12, 24, 48},
	})
	revenue := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "parkd_revenue_total",
		Help: "Total charges of completed sessions",
	})
	occupied := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "parkd_spaces_occupied",
		Help: "Number of occupied spaces per size class",
	}, []string{"size"})
	available := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "parkd_spaces_available",
		Help: "Number of available spaces per size class",
	}, []string{"size"})

	if err := reg.Register(sessions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			sessions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(revenue); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			revenue = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(occupied); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			occupied = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(available); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			available = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{
		sessions:  sessions,
		duration:  duration,
		revenue:   revenue,
		occupied:  occupied,
		available: available,
	}, nil
}

// RecordSessionOpened counts an entry event.
func (s *PromSink) RecordSessionOpened(t model.Ticket) error {
	s.sessions.WithLabelValues("entry", t.VehicleSize.String()).Inc()
	return nil
}

// RecordSessionClosed counts an exit event and observes duration and charge.
func (s *PromSink) RecordSessionClosed(t model.Ticket) error {
	s.sessions.WithLabelValues("exit", t.VehicleSize.String()).Inc()
	s.duration.Observe(t.Duration(time.Time{}).Hours())
	if t.Charge > 0 {
		s.revenue.Add(t.Charge)
	}
	return nil
}

// RecordOccupancy sets the per-size occupancy gauges.
func (s *PromSink) RecordOccupancy(snap model.OccupancySnapshot) error {
	for size, c := range snap.BySize {
		s.occupied.WithLabelValues(size.String()).Set(float64(c.Occupied))
		s.available.WithLabelValues(size.String()).Set(float64(c.Available))
	}
	return nil
}
