package metrics

import (
	"context"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/openlot/parkd/core/metrics"
	"github.com/openlot/parkd/core/model"
	"github.com/openlot/parkd/infra/logger"
)

// InfluxSink writes session and occupancy points to an InfluxDB instance
// using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClient(base, token)
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordSessionOpened writes an entry event point.
func (s *InfluxSink) RecordSessionOpened(t model.Ticket) error {
	return s.writeSessionEvent("entry", t, t.EntryTime)
}

// RecordSessionClosed writes an exit event point including the charge.
func (s *InfluxSink) RecordSessionClosed(t model.Ticket) error {
	return s.writeSessionEvent("exit", t, t.ExitTime)
}

func (s *InfluxSink) writeSessionEvent(event string, t model.Ticket, ts time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("session_event").
		AddTag("event", event).
		AddTag("vehicle_id", t.VehicleID).
		AddTag("space_id", t.SpaceID).
		AddTag("size", t.VehicleSize.String()).
		AddField("charge", t.Charge).
		AddField("duration_hours", t.Duration(ts).Hours()).
		SetTime(ts)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordOccupancy writes the current occupancy counts per size class.
func (s *InfluxSink) RecordOccupancy(snap model.OccupancySnapshot) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	now := time.Now()
	for size, c := range snap.BySize {
		p := write.NewPointWithMeasurement("occupancy").
			AddTag("size", size.String()).
			AddField("total", c.Total).
			AddField("occupied", c.Occupied).
			AddField("available", c.Available).
			SetTime(now)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}
