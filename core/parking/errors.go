package parking

import "errors"

var (
	// ErrDuplicateSpaceID is returned when registering a space whose
	// identifier already exists in the inventory.
	ErrDuplicateSpaceID = errors.New("space id already registered")

	// ErrSpaceNotAvailable is returned when occupying a space that is not
	// currently available. It guards against double allocation.
	ErrSpaceNotAvailable = errors.New("space is not available")

	// ErrSpaceNotOccupied is returned when releasing a space that is not
	// currently occupied. It guards against double release.
	ErrSpaceNotOccupied = errors.New("space is not occupied")

	// ErrUnknownSpace is returned for operations on an unregistered space id.
	ErrUnknownSpace = errors.New("unknown space id")

	// ErrNoSpaceAvailable indicates capacity exhaustion for the requested
	// size. It is an expected, recoverable outcome, not a fault.
	ErrNoSpaceAvailable = errors.New("no compatible space available")

	// ErrVehicleAlreadyParked is returned when a vehicle with an open
	// session attempts to park again.
	ErrVehicleAlreadyParked = errors.New("vehicle already has an open session")

	// ErrNoActiveSession is returned when retrieving a vehicle that has no
	// open session.
	ErrNoActiveSession = errors.New("no open session for vehicle")
)
