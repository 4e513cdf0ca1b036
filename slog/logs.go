package slog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/adconv"
)

// Log layouts.
const (
	// LayoutDaily writes info_<date>.log and error_<date>.log.
	LayoutDaily = "daily"

	// LayoutDocument adds one pages/<page>.log per page to the daily files.
	LayoutDocument = "document"
)

// Layouts lists the supported log layouts.
var Layouts = []string{LayoutDaily, LayoutDocument}

// Ensure log destinations implement adconv.LogDestinations.
var (
	_ adconv.LogDestinations = (*DailyLogs)(nil)
	_ adconv.LogDestinations = (*DocumentLogs)(nil)
)

// DailyLogs writes records below ERROR to info_<date>.log and the rest to
// error_<date>.log, appending to files of earlier runs on the same day.
type DailyLogs struct {
	runID   string
	info    *os.File
	errs    *os.File
	handler slog.Handler
	logger  *slog.Logger
}

// OpenDailyLogs opens the daily log files for date in dir. Every line
// carries the run ID.
func OpenDailyLogs(dir string, date time.Time, runID string) (*DailyLogs, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	day := date.Format("2006-01-02")
	info, err := openAppend(filepath.Join(dir, "info_"+day+".log"))
	if err != nil {
		return nil, err
	}
	errs, err := openAppend(filepath.Join(dir, "error_"+day+".log"))
	if err != nil {
		info.Close()
		return nil, err
	}

	handler := NewRouter(
		NewLineHandler(info, slog.LevelInfo),
		NewLineHandler(errs, slog.LevelError),
		slog.LevelError,
	).WithAttrs([]slog.Attr{slog.String("run", runID)})

	return &DailyLogs{
		runID:   runID,
		info:    info,
		errs:    errs,
		handler: handler,
		logger:  slog.New(handler),
	}, nil
}

// Run returns the run logger.
func (l *DailyLogs) Run() *slog.Logger {
	return l.logger
}

// Document returns the run logger; the daily layout does not split pages.
func (l *DailyLogs) Document(string) (*slog.Logger, func()) {
	return l.logger, func() {}
}

// RunID returns the ID attached to every line.
func (l *DailyLogs) RunID() string {
	return l.runID
}

// Close closes the log files.
func (l *DailyLogs) Close() error {
	errInfo := l.info.Close()
	errErrs := l.errs.Close()
	if errInfo != nil {
		return errInfo
	}
	return errErrs
}

// PageDir is the subdirectory of the log directory holding page logs, kept
// apart so a page name can never match a daily file.
const PageDir = "pages"

// DocumentLogs extends DailyLogs with one log file per page holding that
// page's lines at every level.
type DocumentLogs struct {
	*DailyLogs
	dir string
}

// OpenDocumentLogs opens the daily files in dir and writes page logs to
// dir/pages.
func OpenDocumentLogs(dir string, date time.Time, runID string) (*DocumentLogs, error) {
	pages := filepath.Join(dir, PageDir)
	if err := os.MkdirAll(pages, 0755); err != nil {
		return nil, fmt.Errorf("create page log directory: %w", err)
	}
	daily, err := OpenDailyLogs(dir, date, runID)
	if err != nil {
		return nil, err
	}
	return &DocumentLogs{DailyLogs: daily, dir: pages}, nil
}

// Document returns a logger writing to the daily files and to
// pages/<page>.log. If the page log cannot be opened the run logger is returned
// and the failure is logged.
func (l *DocumentLogs) Document(filename string) (*slog.Logger, func()) {
	path := filepath.Join(l.dir, strings.TrimSuffix(filename, filepath.Ext(filename))+".log")
	f, err := openAppend(path)
	if err != nil {
		l.logger.Error("cannot open page log", "file", filename, "err", err)
		return l.logger, func() {}
	}

	page := NewLineHandler(f, slog.LevelDebug).WithAttrs([]slog.Attr{slog.String("run", l.runID)})
	logger := slog.New(Tee{l.handler, page})
	return logger, func() { f.Close() }
}

func openAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
