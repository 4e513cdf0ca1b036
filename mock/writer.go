package mock

import (
	"context"

	"github.com/fwojciec/adconv"
)

var _ adconv.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of adconv.RecordWriter.
type RecordWriter struct {
	CreateRecordFn func(ctx context.Context, rec *adconv.Record) error
}

func (w *RecordWriter) CreateRecord(ctx context.Context, rec *adconv.Record) error {
	return w.CreateRecordFn(ctx, rec)
}
