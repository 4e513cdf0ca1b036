package mock

import (
	"context"

	"github.com/fwojciec/adconv"
)

var _ adconv.Ledger = (*Ledger)(nil)

// Ledger is a mock implementation of adconv.Ledger.
type Ledger struct {
	ContainsFn func(filename string) bool
	RecordFn   func(ctx context.Context, filename string) error
}

func (l *Ledger) Contains(filename string) bool {
	return l.ContainsFn(filename)
}

func (l *Ledger) Record(ctx context.Context, filename string) error {
	return l.RecordFn(ctx, filename)
}
