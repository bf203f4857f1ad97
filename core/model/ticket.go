package model

import "time"

// Ticket records one vehicle's occupancy of one space from entry to exit.
// The engine owns the ticket while the session is open; callers and sinks
// only ever see value copies.
type Ticket struct {
	ID          string    `json:"id"`
	VehicleID   string    `json:"vehicle_id"`
	VehicleSize SpaceSize `json:"vehicle_size"`
	SpaceID     string    `json:"space_id"`
	EntryTime   time.Time `json:"entry_time"`

	// ExitTime is the zero value while the session is open. It is set exactly
	// once, at close, together with Charge.
	ExitTime time.Time `json:"exit_time,omitempty"`
	Charge   float64   `json:"charge"`
}

// Open reports whether the session is still active.
func (t Ticket) Open() bool {
	return t.ExitTime.IsZero()
}

// Duration returns the session length. For an open ticket the provided
// reference time is used in place of the exit time.
func (t Ticket) Duration(now time.Time) time.Duration {
	end := t.ExitTime
	if t.Open() {
		end = now
	}
	if end.Before(t.EntryTime) {
		return 0
	}
	return end.Sub(t.EntryTime)
}
