package fs

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/fwojciec/adconv"
	"golang.org/x/net/html/charset"
)

// Ensure Source implements adconv.DocumentSource at compile time.
var _ adconv.DocumentSource = (*Source)(nil)

// Source reads saved listing pages from a directory.
type Source struct {
	dir string
}

// NewSource creates a new Source reading from dir.
func NewSource(dir string) *Source {
	return &Source{dir: dir}
}

// Dir returns the input directory.
func (s *Source) Dir() string {
	return s.dir
}

// List returns the names of all .html files in the directory, sorted.
func (s *Source) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, adconv.Errorf(adconv.ECONFIG, "input directory %q does not exist", s.dir)
	} else if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !adconv.IsDocumentName(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Read loads a page and decodes it to UTF-8.
func (s *Source) Read(ctx context.Context, name string) (*adconv.SourceDocument, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, adconv.Errorf(adconv.ENOTFOUND, "page %q not found", name)
	} else if err != nil {
		return nil, err
	}

	return adconv.NewSourceDocument(name, decode(data)), nil
}

// decode converts a page to UTF-8. Pages that are already valid UTF-8 are
// kept as is; others are decoded only when a BOM or meta tag declares the
// encoding. Undeclared invalid bytes are passed through so the extractor
// rejects the page.
func decode(data []byte) string {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return string(data)
	}

	enc, _, certain := charset.DetermineEncoding(data, "text/html")
	if !certain && !declaresCharset(data) {
		return string(data)
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

// declaresCharset reports whether the head of the page names a charset.
// DetermineEncoding falls back to windows-1252 when it finds none.
func declaresCharset(data []byte) bool {
	if len(data) > 1024 {
		data = data[:1024]
	}
	return bytes.Contains(bytes.ToLower(data), []byte("charset"))
}
