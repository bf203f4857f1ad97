package pricing

import (
	"github.com/openlot/parkd/core/model"
	"github.com/openlot/parkd/core/parking"
)

// Subscription charges a fixed nominal fee (possibly zero) for vehicles on
// the subscriber allow-list and falls back to another strategy otherwise.
// The allow-list is supplied by an external collaborator at construction.
type Subscription struct {
	subscribers map[string]struct{}
	nominal     float64
	fallback    parking.PricingStrategy
}

// NewSubscription creates a subscription strategy. A nil fallback defaults
// to the flat rate.
func NewSubscription(subscribers []string, nominal float64, fallback parking.PricingStrategy) *Subscription {
	set := make(map[string]struct{}, len(subscribers))
	for _, id := range subscribers {
		set[id] = struct{}{}
	}
	if fallback == nil {
		fallback = NewFlatRate(nil, 0)
	}
	if nominal < 0 {
		nominal = 0
	}
	return &Subscription{subscribers: set, nominal: nominal, fallback: fallback}
}

// Name implements parking.PricingStrategy.
func (s *Subscription) Name() string { return "subscription" }

// CalculateFee implements parking.PricingStrategy.
func (s *Subscription) CalculateFee(t model.Ticket) float64 {
	if _, ok := s.subscribers[t.VehicleID]; ok {
		return s.nominal
	}
	return s.fallback.CalculateFee(t)
}
