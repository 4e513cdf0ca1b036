package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/fwojciec/adconv"
)

// Ensure Writer implements adconv.RecordWriter at compile time.
var _ adconv.RecordWriter = (*Writer)(nil)

// Writer writes records as indented JSON files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// Path returns the file a record for the given page name is written to.
func (w *Writer) Path(filename string) string {
	return filepath.Join(w.baseDir, adconv.RecordName(filename))
}

// CreateRecord writes rec to <base>.json, replacing any earlier version.
func (w *Writer) CreateRecord(ctx context.Context, rec *adconv.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	data, err := EncodeRecord(rec)
	if err != nil {
		return adconv.Errorf(adconv.EPERSIST, "encode record %s: %v", rec.Key, err)
	}

	if err := writeFileAtomic(w.Path(rec.Filename), data); err != nil {
		return adconv.Errorf(adconv.EPERSIST, "write record %s: %v", rec.Key, err)
	}
	return nil
}

// EncodeRecord formats a record as UTF-8 JSON with two-space indentation.
// Non-ASCII text and HTML characters are written literally.
func EncodeRecord(rec *adconv.Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return nil, err
	}
	return unescapeLineSeparators(buf.Bytes()), nil
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes encoding/json
// always emits back into the literal characters.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		switch esc := data[i+1:]; {
		case bytes.HasPrefix(esc, []byte("u2028")):
			out = append(out, "\u2028"...)
			i += 5
		case bytes.HasPrefix(esc, []byte("u2029")):
			out = append(out, "\u2029"...)
			i += 5
		default:
			out = append(out, data[i], data[i+1])
			i++
		}
	}
	return out
}
