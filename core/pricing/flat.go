package pricing

import "github.com/openlot/parkd/core/model"

// FlatRate bills whole hours at a per-size hourly rate. Sessions shorter
// than one hour are billed as one hour, and every fee is floored at the
// configured minimum charge.
type FlatRate struct {
	rates   map[model.SpaceSize]float64
	minimum float64
}

// NewFlatRate creates a flat-rate strategy. Nil rates fall back to the
// defaults; a non-positive minimum falls back to DefaultMinimum.
func NewFlatRate(rates map[model.SpaceSize]float64, minimum float64) *FlatRate {
	if rates == nil {
		rates = DefaultRates()
	}
	if minimum <= 0 {
		minimum = DefaultMinimum
	}
	return &FlatRate{rates: rates, minimum: minimum}
}

// Name implements parking.PricingStrategy.
func (s *FlatRate) Name() string { return "flat" }

// CalculateFee implements parking.PricingStrategy.
func (s *FlatRate) CalculateFee(t model.Ticket) float64 {
	fee := billedHours(t) * rateFor(s.rates, t.VehicleSize)
	if fee < s.minimum {
		fee = s.minimum
	}
	return fee
}
