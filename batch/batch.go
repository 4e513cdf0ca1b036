// Package batch converts a directory of saved pages in one sequential run.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/fwojciec/adconv"
)

// Runner converts every page of a source that is not yet in the ledger.
// Pages are handled one at a time: read, extracted, written and recorded
// before the next one is considered.
type Runner struct {
	Source    adconv.DocumentSource
	Extractor adconv.Extractor
	Records   adconv.RecordWriter
	Ledger    adconv.Ledger
	Logs      adconv.LogDestinations

	// Policy decides whether a page that fails to parse stops the run.
	// Defaults to adconv.PolicyContinue.
	Policy adconv.FailurePolicy
}

// Summary describes a finished run.
type Summary struct {
	Status    adconv.ExitStatus
	Processed int
	Skipped   int
	Failed    int

	// Failures lists the pages that failed to parse, in processing order.
	Failures []string

	// Err is the error that stopped the run early, if any.
	Err error

	Elapsed time.Duration
}

// panicError carries a recovered panic and the stack it was raised on.
type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

// Run converts the pending pages and returns a summary. The summary line is
// logged however the run ends.
func (r *Runner) Run(ctx context.Context) (s *Summary) {
	begin := time.Now()
	s = &Summary{}
	log := r.Logs.Run()
	log.Info("Started parsing process.")

	defer func() {
		if p := recover(); p != nil {
			pe := &panicError{value: p, stack: debug.Stack()}
			s.fail(pe)
			log.Error(fmt.Sprintf("Fatal error: %v", pe), "stack", string(pe.stack))
		}
		s.Elapsed = time.Since(begin)
		log.Info(fmt.Sprintf("Finished parsing process in %dms.", s.Elapsed.Milliseconds()),
			"status", int(s.Status),
			"processed", s.Processed,
			"skipped", s.Skipped,
			"failed", s.Failed,
		)
	}()

	names, err := r.Source.List(ctx)
	if err != nil {
		s.fail(err)
		logAbort(log, err)
		return s
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			s.fail(err)
			logAbort(log, err)
			return s
		}

		if r.Ledger.Contains(name) {
			s.Skipped++
			continue
		}

		err := r.process(ctx, name)
		if err == nil {
			s.Processed++
			continue
		}

		status := adconv.StatusFor(err)
		if status == adconv.StatusParse {
			s.Status = s.Status.Merge(status)
			s.Failed++
			s.Failures = append(s.Failures, name)
			if r.Policy == adconv.PolicyFailFast {
				s.Err = err
				return s
			}
			continue
		}

		s.fail(err)
		logAbort(log, err)
		return s
	}

	return s
}

func (s *Summary) fail(err error) {
	s.Err = err
	s.Status = s.Status.Merge(adconv.StatusFor(err))
}

func logAbort(log *slog.Logger, err error) {
	if adconv.ErrorCode(err) == adconv.ECONFIG {
		log.Error(fmt.Sprintf("Configuration error: %s", adconv.ErrorMessage(err)))
		return
	}
	log.Error(fmt.Sprintf("Fatal error: %v", err))
}

// process converts a single page. The record is written before the page is
// recorded in the ledger, so the ledger never names a missing record.
func (r *Runner) process(ctx context.Context, name string) (err error) {
	log, done := r.Logs.Document(name)
	defer done()

	begin := time.Now()
	var doc *adconv.SourceDocument
	defer func() {
		if p := recover(); p != nil {
			err = &panicError{value: p, stack: debug.Stack()}
		}
		if err != nil {
			logFailure(log, name, time.Since(begin), doc, err)
		}
	}()

	doc, err = r.Source.Read(ctx, name)
	if err != nil {
		return err
	}

	// A record cannot be written without an identifier.
	if doc.Key == "" {
		return adconv.NewExtractionFailure(doc, adconv.Errorf(adconv.EEXTRACT, "filename %q has no identifier", name))
	}

	rec, err := r.Extractor.Extract(doc)
	if err != nil {
		return err
	}

	if err := r.Records.CreateRecord(ctx, rec); err != nil {
		return fmt.Errorf("write record: %w", err)
	}

	if err := r.Ledger.Record(ctx, name); err != nil {
		return fmt.Errorf("record ledger: %w", err)
	}

	log.Info(fmt.Sprintf("PARSE %s SUCCESS %dms", name, time.Since(begin).Milliseconds()),
		"key", doc.Key,
		"checksum", doc.Checksum(),
	)
	return nil
}

func logFailure(log *slog.Logger, name string, elapsed time.Duration, doc *adconv.SourceDocument, err error) {
	attrs := []any{"err", err}

	var failure *adconv.ExtractionFailure
	switch {
	case errors.As(err, &failure):
		attrs = append(attrs, "key", failure.Key, "snippet", failure.Snippet)
	case doc != nil:
		attrs = append(attrs, "key", doc.Key, "snippet", adconv.Snippet(doc.HTML, adconv.SnippetLength))
	default:
		attrs = append(attrs, "key", adconv.KeyFromFilename(name), "snippet", "[no HTML loaded]")
	}

	var p *panicError
	if errors.As(err, &p) {
		attrs = append(attrs, "stack", string(p.stack))
	}

	log.Error(fmt.Sprintf("PARSE %s FAILED %dms", name, elapsed.Milliseconds()), attrs...)
}
