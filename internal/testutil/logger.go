package testutil

import (
	"github.com/dtroode/neoarcana-server/internal/logger"
)

// MakeNoopLogger returns a logger for tests that discards output.
func MakeNoopLogger() *logger.Logger {
	return logger.Discard()
}
