package config

import "fmt"

// APIConfig defines the HTTP adapter and Prometheus endpoints.
type APIConfig struct {
	Addr              string `json:"addr"`
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.PrometheusPort == "" {
		c.PrometheusPort = "2112"
	}
}

// Validate checks mandatory fields.
func (c APIConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("api: addr is required")
	}
	return nil
}
