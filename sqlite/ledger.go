package sqlite

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/adconv"
)

// Compile-time interface verification.
var _ adconv.Ledger = (*Ledger)(nil)

// Entry is one converted page in the ledger table.
type Entry struct {
	Filename   string
	Key        string
	RunID      string
	RecordedAt time.Time
}

// Ledger implements adconv.Ledger using SQLite. Entries are loaded into
// memory by Load; Contains never touches the database.
type Ledger struct {
	db    *DB
	runID string

	mu   sync.Mutex
	seen map[string]struct{}
}

// NewLedger creates a new Ledger tagging new entries with runID.
func NewLedger(db *DB, runID string) *Ledger {
	return &Ledger{db: db, runID: runID, seen: make(map[string]struct{})}
}

// Load reads every entry into memory.
func (l *Ledger) Load(ctx context.Context) error {
	rows, err := l.db.QueryContext(ctx, `SELECT filename FROM ledger`)
	if err != nil {
		return adconv.Errorf(adconv.EPERSIST, "load ledger: %v", err)
	}
	defer rows.Close()

	l.mu.Lock()
	defer l.mu.Unlock()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return adconv.Errorf(adconv.EPERSIST, "load ledger: %v", err)
		}
		l.seen[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return adconv.Errorf(adconv.EPERSIST, "load ledger: %v", err)
	}
	return nil
}

// Contains reports whether filename is in the ledger.
func (l *Ledger) Contains(filename string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.seen[filename]
	return ok
}

// Record inserts filename. Existing entries keep their original run and
// timestamp.
func (l *Ledger) Record(ctx context.Context, filename string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := l.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO ledger (filename, doc_key, run_id, recorded_at)
		VALUES (?, ?, ?, ?)
	`, filename, adconv.KeyFromFilename(filename), l.runID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return adconv.Errorf(adconv.EPERSIST, "record ledger: %v", err)
	}

	l.seen[filename] = struct{}{}
	return nil
}

// Entries returns every entry ordered by recording time.
func (l *Ledger) Entries(ctx context.Context) ([]*Entry, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT filename, doc_key, run_id, recorded_at
		FROM ledger
		ORDER BY recorded_at, rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		var recordedAt string
		if err := rows.Scan(&e.Filename, &e.Key, &e.RunID, &recordedAt); err != nil {
			return nil, err
		}
		if e.RecordedAt, err = time.Parse(time.RFC3339, recordedAt); err != nil {
			return nil, fmt.Errorf("failed to parse recorded_at: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
