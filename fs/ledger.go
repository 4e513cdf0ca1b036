package fs

import (
	"bufio"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fwojciec/adconv"
)

// Ensure Ledger implements adconv.Ledger at compile time.
var _ adconv.Ledger = (*Ledger)(nil)

// Ledger is an append-only text file with one converted page name per
// line. The whole file is loaded into memory when opened.
type Ledger struct {
	path string

	mu   sync.Mutex
	seen map[string]struct{}
}

// OpenLedger loads the ledger at path. A missing file is an empty ledger;
// it is created on the first Record.
func OpenLedger(path string) (*Ledger, error) {
	l := &Ledger{path: path, seen: make(map[string]struct{})}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return l, nil
	} else if err != nil {
		return nil, adconv.Errorf(adconv.EPERSIST, "open ledger: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if name := strings.TrimSpace(scanner.Text()); name != "" {
			l.seen[name] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, adconv.Errorf(adconv.EPERSIST, "read ledger: %v", err)
	}
	return l, nil
}

// Contains reports whether filename is in the ledger.
func (l *Ledger) Contains(filename string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.seen[filename]
	return ok
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.seen)
}

// Record appends filename and syncs the file. Names already present are
// not written again.
func (l *Ledger) Record(ctx context.Context, filename string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.seen[filename]; ok {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return adconv.Errorf(adconv.EPERSIST, "create ledger directory: %v", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return adconv.Errorf(adconv.EPERSIST, "open ledger: %v", err)
	}
	if _, err := f.WriteString(filename + "\n"); err != nil {
		f.Close()
		return adconv.Errorf(adconv.EPERSIST, "append ledger: %v", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return adconv.Errorf(adconv.EPERSIST, "sync ledger: %v", err)
	}
	if err := f.Close(); err != nil {
		return adconv.Errorf(adconv.EPERSIST, "close ledger: %v", err)
	}

	l.seen[filename] = struct{}{}
	return nil
}
