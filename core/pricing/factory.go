package pricing

import (
	"fmt"
	"time"

	"github.com/openlot/parkd/core/factory"
	"github.com/openlot/parkd/core/model"
	"github.com/openlot/parkd/core/parking"
)

var strategyRegistry = factory.NewRegistry[parking.PricingStrategy]()

// RegisterStrategy adds a pricing strategy factory identified by name.
func RegisterStrategy(name string, f factory.Factory[parking.PricingStrategy]) error {
	return strategyRegistry.Register(name, f)
}

// New creates the pricing strategy selected by the configuration. An empty
// type selects the default flat rate.
func New(cfg factory.ModuleConfig) (parking.PricingStrategy, error) {
	if cfg.Type == "" {
		return NewFlatRate(nil, 0), nil
	}
	return strategyRegistry.Create(cfg)
}

type ratesConf struct {
	Rates   map[string]float64 `json:"rates"`
	Minimum float64            `json:"minimum"`
}

func (c ratesConf) sizeRates() (map[model.SpaceSize]float64, error) {
	if len(c.Rates) == 0 {
		return nil, nil
	}
	out := make(map[model.SpaceSize]float64, len(c.Rates))
	for name, rate := range c.Rates {
		size, err := model.ParseSpaceSize(name)
		if err != nil {
			return nil, err
		}
		if rate < 0 {
			return nil, fmt.Errorf("rate for %s must not be negative", size)
		}
		out[size] = rate
	}
	return out, nil
}

// parseClock converts "HH:MM" into an offset since midnight.
func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func init() {
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(RegisterStrategy("flat", func(conf map[string]any) (parking.PricingStrategy, error) {
		var c ratesConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		rates, err := c.sizeRates()
		if err != nil {
			return nil, err
		}
		return NewFlatRate(rates, c.Minimum), nil
	}))
	must(RegisterStrategy("peak", func(conf map[string]any) (parking.PricingStrategy, error) {
		var c struct {
			ratesConf  `json:",squash"`
			Multiplier float64 `json:"multiplier"`
			PeakStart  string  `json:"peak_start"`
			PeakEnd    string  `json:"peak_end"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		rates, err := c.sizeRates()
		if err != nil {
			return nil, err
		}
		start, err := parseClock(c.PeakStart)
		if err != nil {
			return nil, err
		}
		end, err := parseClock(c.PeakEnd)
		if err != nil {
			return nil, err
		}
		return NewPeakHour(rates, c.Minimum, c.Multiplier, start, end)
	}))
	must(RegisterStrategy("subscription", func(conf map[string]any) (parking.PricingStrategy, error) {
		var c struct {
			ratesConf   `json:",squash"`
			Subscribers []string `json:"subscribers"`
			Nominal     float64  `json:"nominal"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		rates, err := c.sizeRates()
		if err != nil {
			return nil, err
		}
		return NewSubscription(c.Subscribers, c.Nominal, NewFlatRate(rates, c.Minimum)), nil
	}))
	must(RegisterStrategy("energy", func(conf map[string]any) (parking.PricingStrategy, error) {
		var c struct {
			ratesConf `json:",squash"`
			PerKWh    float64            `json:"per_kwh"`
			Energy    map[string]float64 `json:"energy"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		rates, err := c.sizeRates()
		if err != nil {
			return nil, err
		}
		return NewEnergyBased(StaticMeter(c.Energy), c.PerKWh, NewFlatRate(rates, c.Minimum)), nil
	}))
}
