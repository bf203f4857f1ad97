package parking

import "github.com/openlot/parkd/core/model"

// PricingStrategy computes the fee for a closed session. Implementations
// must be pure functions of the ticket and their injected configuration so
// they can be swapped at runtime and unit tested deterministically.
type PricingStrategy interface {
	// Name identifies the strategy for logging and reporting.
	Name() string
	// CalculateFee returns a non-negative amount for the closed ticket.
	CalculateFee(t model.Ticket) float64
}

// EventSink receives session lifecycle notifications. Sink failures are
// isolated by the engine: an error or panic in one sink never affects other
// sinks or the parking transaction itself.
type EventSink interface {
	OnEntry(t model.Ticket) error
	OnExit(t model.Ticket) error
}

// ParkResult is returned by a successful Park call.
type ParkResult struct {
	// Ticket is an immutable snapshot of the open session.
	Ticket model.Ticket
	// SinkErrors collects failures of individual event sinks. Notification
	// failures never fail the park itself.
	SinkErrors []error
}

// RetrieveResult is returned by a successful Retrieve call.
type RetrieveResult struct {
	// Ticket is the closed session including the computed charge.
	Ticket model.Ticket
	// SinkErrors collects failures of individual event sinks.
	SinkErrors []error
}
