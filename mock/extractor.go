package mock

import "github.com/fwojciec/adconv"

var _ adconv.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of adconv.Extractor.
type Extractor struct {
	ExtractFn func(doc *adconv.SourceDocument) (*adconv.Record, error)
}

func (e *Extractor) Extract(doc *adconv.SourceDocument) (*adconv.Record, error) {
	return e.ExtractFn(doc)
}
