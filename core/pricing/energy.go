package pricing

import "github.com/openlot/parkd/core/model"

// EnergyMeter reports the energy delivered to a vehicle during a session.
// It is an external charging collaborator; the strategy never computes
// energy itself.
type EnergyMeter interface {
	DeliveredKWh(t model.Ticket) float64
}

// StaticMeter is an EnergyMeter backed by a fixed vehicle-id map. It serves
// configuration seeds and tests.
type StaticMeter map[string]float64

// DeliveredKWh implements EnergyMeter.
func (m StaticMeter) DeliveredKWh(t model.Ticket) float64 { return m[t.VehicleID] }

// EnergyBased prices a session as a discounted flat parking component plus
// the delivered energy at a per-kWh rate.
type EnergyBased struct {
	meter   EnergyMeter
	perKWh  float64
	parking *FlatRate
}

// NewEnergyBased creates an energy-based strategy. A nil meter reports zero
// delivered energy; a nil parking component uses default flat rates.
func NewEnergyBased(meter EnergyMeter, perKWh float64, parking *FlatRate) *EnergyBased {
	if meter == nil {
		meter = StaticMeter(nil)
	}
	if perKWh < 0 {
		perKWh = 0
	}
	if parking == nil {
		parking = NewFlatRate(nil, 0)
	}
	return &EnergyBased{meter: meter, perKWh: perKWh, parking: parking}
}

// Name implements parking.PricingStrategy.
func (s *EnergyBased) Name() string { return "energy" }

// CalculateFee implements parking.PricingStrategy.
func (s *EnergyBased) CalculateFee(t model.Ticket) float64 {
	kwh := s.meter.DeliveredKWh(t)
	if kwh < 0 {
		kwh = 0
	}
	return s.parking.CalculateFee(t) + kwh*s.perKWh
}
