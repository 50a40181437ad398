// Package logger provides the zerolog-backed implementation of the core
// logging interface.
package logger

import corelogger "github.com/betsim/betroute/core/logger"

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// New returns a Logger for the given component. The output format is
// selected through the APP_ENV environment variable.
func New(component string) Logger {
	return NewZerologLogger(component)
}
