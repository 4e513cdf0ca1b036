package mock

import (
	"log/slog"

	"github.com/fwojciec/adconv"
)

var _ adconv.LogDestinations = (*LogDestinations)(nil)

// LogDestinations is a mock implementation of adconv.LogDestinations.
type LogDestinations struct {
	RunFn      func() *slog.Logger
	DocumentFn func(filename string) (*slog.Logger, func())
}

func (m *LogDestinations) Run() *slog.Logger {
	return m.RunFn()
}

func (m *LogDestinations) Document(filename string) (*slog.Logger, func()) {
	return m.DocumentFn(filename)
}
