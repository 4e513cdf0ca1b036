package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/adconv"
	"github.com/fwojciec/adconv/batch"
	"github.com/fwojciec/adconv/fs"
	"github.com/fwojciec/adconv/goquery"
	adslog "github.com/fwojciec/adconv/slog"
	"github.com/fwojciec/adconv/sqlite"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// A missing .env is fine.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	stop()
	os.Exit(int(m.Status))
}

// Main represents the program.
type Main struct {
	// Now returns the date the daily log files are named after.
	Now func() time.Time

	// NewRunID returns the ID attached to every log line of a run.
	NewRunID func() string

	// Status is the exit status of the last call to Run.
	Status adconv.ExitStatus

	// Summary of the last batch run, nil if the batch never started.
	Summary *batch.Summary
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Now:      time.Now,
		NewRunID: uuid.NewString,
	}
}

// Run executes the CLI with the given arguments. Failures of the batch
// itself are reported through the log files and Status; the returned error
// covers usage and setup problems only.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	m.Status = adconv.StatusOK
	m.Summary = nil

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("adconv"),
		kong.Description("Convert saved classified-ad pages to JSON records"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Configuration(YAML),
	)
	if err != nil {
		m.Status = adconv.StatusFatal
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		m.Status = adconv.StatusConfig
		return err
	}

	logs, err := openLogs(cli.LogLayout, cli.LogDir, m.Now(), m.NewRunID())
	if err != nil {
		m.Status = adconv.StatusFatal
		return fmt.Errorf("failed to open logs in %q: %w", cli.LogDir, err)
	}
	defer logs.Close()

	if err := os.MkdirAll(cli.Output, 0755); err != nil {
		m.Status = adconv.StatusFatal
		logs.Run().Error(fmt.Sprintf("Fatal error: %v", err))
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ledger, closeLedger, err := openLedger(ctx, cli, logs.RunID())
	if err != nil {
		m.Status = adconv.StatusFatal
		logs.Run().Error(fmt.Sprintf("Fatal error: %v", err))
		return err
	}
	defer closeLedger()

	runner := &batch.Runner{
		Source:    fs.NewSource(cli.Input),
		Extractor: goquery.NewExtractor(cli.ImageMode),
		Records:   fs.NewWriter(cli.Output),
		Ledger:    ledger,
		Logs:      logs,
		Policy:    cli.Policy,
	}

	m.Summary = runner.Run(ctx)
	m.Status = m.Summary.Status
	return nil
}

// runLogs is the set of log destinations owned by a run.
type runLogs interface {
	adconv.LogDestinations
	RunID() string
	Close() error
}

func openLogs(layout, dir string, date time.Time, runID string) (runLogs, error) {
	if layout == adslog.LayoutDocument {
		return adslog.OpenDocumentLogs(dir, date, runID)
	}
	return adslog.OpenDailyLogs(dir, date, runID)
}

// openLedger opens the SQLite ledger when a database path is configured and
// the text ledger otherwise.
func openLedger(ctx context.Context, cli *CLI, runID string) (adconv.Ledger, func(), error) {
	if cli.LedgerDB == "" {
		l, err := fs.OpenLedger(cli.Ledger)
		if err != nil {
			return nil, nil, err
		}
		return l, func() {}, nil
	}

	db := sqlite.NewDB(cli.LedgerDB)
	if err := db.Open(); err != nil {
		return nil, nil, fmt.Errorf("failed to open ledger database at %q: %w", cli.LedgerDB, err)
	}
	l := sqlite.NewLedger(db, runID)
	if err := l.Load(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return l, func() { db.Close() }, nil
}
