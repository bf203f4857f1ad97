// Package analytics computes aggregate statistics over completed parking
// sessions for reporting collaborators.
package analytics

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/openlot/parkd/core/model"
)

// SessionStats summarizes a set of completed sessions.
type SessionStats struct {
	Count               int     `json:"count"`
	MeanDurationHours   float64 `json:"mean_duration_hours"`
	StdDevDurationHours float64 `json:"stddev_duration_hours"`
	MeanCharge          float64 `json:"mean_charge"`
	TotalRevenue        float64 `json:"total_revenue"`
}

// Compute aggregates the closed tickets in the given slice. Open tickets are
// ignored. An empty input yields the zero value.
func Compute(tickets []model.Ticket) SessionStats {
	var (
		durations []float64
		charges   []float64
	)
	for _, t := range tickets {
		if t.Open() {
			continue
		}
		durations = append(durations, t.Duration(time.Time{}).Hours())
		charges = append(charges, t.Charge)
	}
	if len(durations) == 0 {
		return SessionStats{}
	}
	s := SessionStats{
		Count:             len(durations),
		MeanDurationHours: stat.Mean(durations, nil),
		MeanCharge:        stat.Mean(charges, nil),
	}
	if len(durations) > 1 {
		s.StdDevDurationHours = stat.StdDev(durations, nil)
	}
	for _, c := range charges {
		s.TotalRevenue += c
	}
	return s
}
