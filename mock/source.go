package mock

import (
	"context"

	"github.com/fwojciec/adconv"
)

var _ adconv.DocumentSource = (*DocumentSource)(nil)

// DocumentSource is a mock implementation of adconv.DocumentSource.
type DocumentSource struct {
	ListFn func(ctx context.Context) ([]string, error)
	ReadFn func(ctx context.Context, name string) (*adconv.SourceDocument, error)
}

func (s *DocumentSource) List(ctx context.Context) ([]string, error) {
	return s.ListFn(ctx)
}

func (s *DocumentSource) Read(ctx context.Context, name string) (*adconv.SourceDocument, error) {
	return s.ReadFn(ctx, name)
}
