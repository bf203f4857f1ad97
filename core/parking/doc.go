// Package parking implements the allocation and ticketing engine: a space
// inventory, the session lifecycle from entry to exit, pluggable pricing
// strategies and fan-out of lifecycle events to registered sinks.
//
// Invariants upheld by the engine:
//   - the number of occupied spaces equals the number of open sessions
//   - at most one open session exists per vehicle id
//   - a ticket is closed at most once and its charge is computed exactly
//     once, at close
package parking
