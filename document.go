package adconv

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// DocumentExt is the extension of convertible source pages.
const DocumentExt = ".html"

// SnippetLength is the number of characters of a failing document kept in
// the error log.
const SnippetLength = 1000

// SourceDocument is a saved listing page, read once per processing attempt.
type SourceDocument struct {
	// Key is the listing identifier taken from the filename.
	Key string

	// Filename is the base name of the page inside the input directory.
	Filename string

	// HTML is the raw page decoded to UTF-8.
	HTML string
}

// NewSourceDocument returns a document for filename with its key derived
// from the filename.
func NewSourceDocument(filename, html string) *SourceDocument {
	return &SourceDocument{
		Key:      KeyFromFilename(filename),
		Filename: filename,
		HTML:     html,
	}
}

// Checksum returns the xxhash64 of the raw HTML as 16 hex digits.
func (d *SourceDocument) Checksum() string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(d.HTML))
}

// KeyFromFilename returns the listing identifier encoded in a page name:
// the part of the base name before the first underscore.
// Example: 4512345_stan-zagreb.html → 4512345
func KeyFromFilename(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if i := strings.IndexByte(base, '_'); i >= 0 {
		return base[:i]
	}
	return base
}

// IsDocumentName reports whether name looks like a convertible page.
func IsDocumentName(name string) bool {
	return strings.HasSuffix(name, DocumentExt)
}

// RecordName returns the output filename for a page name.
// Example: 4512345_stan-zagreb.html → 4512345_stan-zagreb.json
func RecordName(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + ".json"
}

// Snippet returns the first n characters of s with line breaks flattened
// to spaces, so the result fits on one log line.
func Snippet(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(string(runes))
}

// DocumentSource enumerates and reads saved pages.
type DocumentSource interface {
	// List returns the names of all convertible pages in lexical order.
	// Returns ECONFIG if the input location does not exist.
	List(ctx context.Context) ([]string, error)

	// Read loads a single page by name.
	// Returns ENOTFOUND if the page does not exist.
	Read(ctx context.Context, name string) (*SourceDocument, error)
}
