package pdftables

import (
	"errors"
	"fmt"
)

// ErrInputNotFound indicates the input file does not exist.
var ErrInputNotFound = errors.New("input file not found")

// ExtractionError represents a failure while reading the document or
// detecting its tables.
type ExtractionError struct {
	Page  int    // 1-based page number, 0 when not page specific
	Stage string // "open", "pages", "detect"
	Err   error
}

func (e *ExtractionError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("extraction failed on page %d (%s): %v", e.Page, e.Stage, e.Err)
	}
	return fmt.Sprintf("extraction failed (%s): %v", e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// SerializationError represents a failure while writing the output file.
type SerializationError struct {
	Path string
	Err  error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// FailureKind classifies an error returned by Extract.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureInputNotFound
	FailureExtraction
	FailureSerialization
	FailureUnknown
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureInputNotFound:
		return "input not found"
	case FailureExtraction:
		return "extraction failed"
	case FailureSerialization:
		return "serialization failed"
	default:
		return "unknown"
	}
}

// Classify maps an error returned by Extract to its FailureKind.
func Classify(err error) FailureKind {
	var (
		extractErr   *ExtractionError
		serializeErr *SerializationError
	)
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrInputNotFound):
		return FailureInputNotFound
	case errors.As(err, &serializeErr):
		return FailureSerialization
	case errors.As(err, &extractErr):
		return FailureExtraction
	default:
		return FailureUnknown
	}
}
