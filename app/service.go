// Package app wires the configuration into a runnable service: inventory,
// engine, pricing, sinks and the HTTP adapters.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	apiparking "github.com/openlot/parkd/api/parking"
	"github.com/openlot/parkd/config"
	coremetrics "github.com/openlot/parkd/core/metrics"
	"github.com/openlot/parkd/core/parking"
	"github.com/openlot/parkd/core/pricing"
	"github.com/openlot/parkd/infra/logger"
	inframetrics "github.com/openlot/parkd/infra/metrics"
	"github.com/openlot/parkd/infra/mqtt"
	"github.com/openlot/parkd/infra/notify"
	"github.com/openlot/parkd/internal/eventbus"
)

// Service orchestrates the allocation engine and its collaborators.
type Service struct {
	Engine *parking.Engine

	bus         *eventbus.Bus
	collector   *inframetrics.Collector
	publisher   mqtt.Publisher
	log         logger.Logger
	apiAddr     string
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	inv := parking.NewSpaceInventory()
	spaces, err := cfg.Facility.ModelSpaces()
	if err != nil {
		return nil, fmt.Errorf("facility: %w", err)
	}
	if err := inv.AddSpaces(spaces); err != nil {
		return nil, fmt.Errorf("seed inventory: %w", err)
	}
	logg.Infof("seeded %d spaces for facility %s", len(spaces), cfg.Facility.Name)

	strategy, err := pricing.New(cfg.Pricing)
	if err != nil {
		return nil, fmt.Errorf("pricing strategy: %w", err)
	}
	engine, err := parking.NewEngine(inv, strategy, logg)
	if err != nil {
		return nil, err
	}
	engine.RegisterSink(notify.NewLogSink(logger.New("events")))

	bus := eventbus.New()
	engine.RegisterSink(notify.NewBusSink(bus))

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	collector := inframetrics.NewCollector(bus, sink, engine.Occupancy, logg)

	svc := &Service{
		Engine:      engine,
		bus:         bus,
		collector:   collector,
		log:         logg,
		apiAddr:     cfg.API.Addr,
		promEnabled: cfg.API.PrometheusEnabled,
		promPort:    cfg.API.PrometheusPort,
	}
	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.publisher = pub
		engine.RegisterSink(notify.NewMQTTSink(pub, cfg.MQTT.TopicPrefix))
	}
	return svc, nil
}

// Run serves the HTTP API and blocks until the context is canceled.
func (s *Service) Run(ctx context.Context) error {
	go s.collector.Run(ctx)
	if s.promEnabled {
		go func() {
			if err := inframetrics.StartPromServer(s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              s.apiAddr,
		Handler:           apiparking.NewHandler(s.Engine),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.Infof("serving API on %s", s.apiAddr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}

// Close releases the service's external connections.
func (s *Service) Close() error {
	s.bus.Close()
	if s.publisher != nil {
		s.publisher.Close()
	}
	return nil
}
