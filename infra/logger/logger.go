// Package logger provides the zerolog-backed implementation of the core
// logging contract.
package logger

import corelogger "github.com/openlot/parkd/core/logger"

// Logger mirrors the core logging contract so infra packages need a single
// import.
type Logger = corelogger.Logger

// New returns a component-tagged logger backed by zerolog.
func New(component string) Logger {
	return NewZerologLogger(component)
}
