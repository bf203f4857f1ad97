// Package pricing provides the fee-calculation strategies applied when a
// parking session closes. Strategies are pure functions of the closed ticket
// and their injected configuration; the active one is selected by name
// through the factory registry.
package pricing

import (
	"math"
	"time"

	"github.com/openlot/parkd/core/model"
)

// DefaultMinimum is the floor applied to any computed fee.
const DefaultMinimum = 2.0

// DefaultRates returns the default hourly rate per size class.
func DefaultRates() map[model.SpaceSize]float64 {
	return map[model.SpaceSize]float64{
		model.SizeCompact:  5.0,
		model.SizeStandard: 10.0,
		model.SizeLarge:    15.0,
	}
}

// billedHours rounds a session up to whole hours, with a minimum of one
// billed hour for any session.
func billedHours(t model.Ticket) float64 {
	h := math.Ceil(t.Duration(time.Time{}).Hours())
	if h < 1 {
		h = 1
	}
	return h
}

func rateFor(rates map[model.SpaceSize]float64, size model.SpaceSize) float64 {
	if r, ok := rates[size]; ok {
		return r
	}
	return DefaultRates()[size]
}
