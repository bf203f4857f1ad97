// Package metrics defines the sink interface used to export occupancy and
// session metrics. Implementations such as the Prometheus and InfluxDB sinks
// live under infra/metrics and register themselves with the factory; the
// factory helpers return a MultiSink automatically when multiple sinks are
// configured.
package metrics
