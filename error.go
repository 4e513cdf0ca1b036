package adconv

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
	ECONFIG   = "config"
	EEXTRACT  = "extract"
	EPERSIST  = "persist"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// ExtractionFailure reports a document that could not be parsed at all.
// It carries enough of the document to diagnose the failure from logs.
type ExtractionFailure struct {
	Key      string
	Filename string
	Snippet  string
	Err      error
}

// NewExtractionFailure wraps err with the identity and snippet of doc.
func NewExtractionFailure(doc *SourceDocument, err error) *ExtractionFailure {
	return &ExtractionFailure{
		Key:      doc.Key,
		Filename: doc.Filename,
		Snippet:  Snippet(doc.HTML, SnippetLength),
		Err:      err,
	}
}

func (f *ExtractionFailure) Error() string {
	if f.Key == "" {
		return fmt.Sprintf("extract %s: %v", f.Filename, f.Err)
	}
	return fmt.Sprintf("extract %s: %v", f.Key, f.Err)
}

func (f *ExtractionFailure) Unwrap() error {
	return f.Err
}
