package adconv

import "log/slog"

// LogDestinations hands out the loggers of a batch run. The logger for a
// page is requested explicitly for each page rather than switched
// globally.
type LogDestinations interface {
	// Run returns the logger for run-level events.
	Run() *slog.Logger

	// Document returns the logger for events about one page. The returned
	// function releases any resources held for it and must be called once
	// the page is done.
	Document(filename string) (*slog.Logger, func())
}
