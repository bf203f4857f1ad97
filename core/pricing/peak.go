package pricing

import (
	"fmt"
	"time"

	"github.com/openlot/parkd/core/model"
)

// PeakHour applies the flat-rate formula with a multiplier on the portion of
// the session overlapping a daily peak window. A session spanning the window
// boundary is pro-rated.
type PeakHour struct {
	rates      map[model.SpaceSize]float64
	minimum    float64
	multiplier float64
	// start and end are offsets since local midnight; the window recurs
	// every day and must not wrap past midnight.
	start time.Duration
	end   time.Duration
}

// NewPeakHour creates a peak-hour strategy with the given daily window.
func NewPeakHour(rates map[model.SpaceSize]float64, minimum, multiplier float64, start, end time.Duration) (*PeakHour, error) {
	if multiplier <= 0 {
		return nil, fmt.Errorf("pricing: peak multiplier must be positive")
	}
	if start < 0 || end > 24*time.Hour || end <= start {
		return nil, fmt.Errorf("pricing: invalid peak window %v-%v", start, end)
	}
	if rates == nil {
		rates = DefaultRates()
	}
	if minimum <= 0 {
		minimum = DefaultMinimum
	}
	return &PeakHour{rates: rates, minimum: minimum, multiplier: multiplier, start: start, end: end}, nil
}

// Name implements parking.PricingStrategy.
func (s *PeakHour) Name() string { return "peak" }

// CalculateFee implements parking.PricingStrategy.
func (s *PeakHour) CalculateFee(t model.Ticket) float64 {
	total := t.Duration(time.Time{})
	base := billedHours(t) * rateFor(s.rates, t.VehicleSize)
	if total > 0 {
		frac := float64(s.overlap(t.EntryTime, t.ExitTime)) / float64(total)
		base *= (1 - frac) + frac*s.multiplier
	}
	if base < s.minimum {
		base = s.minimum
	}
	return base
}

// overlap returns the portion of [from, to) falling inside the daily peak
// window, summed across every day the session touches.
func (s *PeakHour) overlap(from, to time.Time) time.Duration {
	if !to.After(from) {
		return 0
	}
	var total time.Duration
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	for ; day.Before(to); day = day.AddDate(0, 0, 1) {
		ws := day.Add(s.start)
		we := day.Add(s.end)
		if ws.Before(from) {
			ws = from
		}
		if we.After(to) {
			we = to
		}
		if we.After(ws) {
			total += we.Sub(ws)
		}
	}
	return total
}
