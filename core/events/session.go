// Package events defines the session lifecycle events fanned out to
// monitoring consumers over the internal event bus.
package events

import (
	"time"

	"github.com/openlot/parkd/core/model"
)

// Kind distinguishes session lifecycle events.
type Kind int

const (
	Entry Kind = iota
	Exit
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case Entry:
		return "entry"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

// SessionEvent is published when a session opens or closes. The ticket is an
// immutable snapshot taken at notification time.
type SessionEvent struct {
	Kind   Kind
	Ticket model.Ticket
	Time   time.Time
}
