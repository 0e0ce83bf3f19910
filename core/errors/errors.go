// Package errors defines the error values shared across gloss packages.
//
// Every typed error unwraps to one of the sentinels below unless it carries
// an underlying cause, so callers can branch with errors.Is and recover
// details with errors.As.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound: a named resource (scorer, verse, cache entry) is absent.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput: malformed input or a bad option value.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupported: a format or feature gloss does not handle.
	ErrUnsupported = errors.New("unsupported")
	// ErrAlignment: two corpora do not cover the same verses.
	ErrAlignment = errors.New("corpora are not verse-aligned")
)

// causeOr returns cause when set, else the sentinel.
func causeOr(cause, sentinel error) error {
	if cause != nil {
		return cause
	}
	return sentinel
}

// NotFoundError names a missing resource.
type NotFoundError struct {
	Resource string // "scorer", "verse", "cache entry"
	ID       string
	Err      error
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return causeOr(e.Err, ErrNotFound) }

// ValidationError reports a rejected option or value.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return causeOr(e.Err, ErrInvalidInput) }

// IOError wraps a filesystem or stream failure with the operation and path.
type IOError struct {
	Operation string // "read corpus", "open cache", "write"
	Path      string
	Err       error
}

func (e *IOError) Error() string {
	target := e.Operation
	if e.Path != "" {
		target += " " + e.Path
	}
	return fmt.Sprintf("failed to %s: %v", target, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError locates malformed corpus, cache or reference input.
type ParseError struct {
	Format  string // "tsv", "osis", "xz", "reference"
	Path    string
	Line    int // 1-based, 0 when unknown
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	where := e.Path
	if e.Line > 0 {
		where = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	if where == "" {
		return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
	}
	return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, where, e.Message)
}

func (e *ParseError) Unwrap() error { return causeOr(e.Err, ErrInvalidInput) }

// UnsupportedError names something gloss cannot handle.
type UnsupportedError struct {
	Feature string
	Reason  string
}

func (e *UnsupportedError) Error() string {
	if e.Reason == "" {
		return "unsupported " + e.Feature
	}
	return fmt.Sprintf("unsupported %s: %s", e.Feature, e.Reason)
}

func (e *UnsupportedError) Unwrap() error { return ErrUnsupported }

// AlignmentError reports a verse mismatch between a source and a target corpus.
// Missing lists are truncated samples; the counts are always exact.
type AlignmentError struct {
	SourceVerses    int
	TargetVerses    int
	MissingInTarget []string
	MissingInSource []string
}

func (e *AlignmentError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "verse mismatch: source has %d verses, target has %d", e.SourceVerses, e.TargetVerses)
	if len(e.MissingInTarget) > 0 {
		fmt.Fprintf(&sb, "; missing in target: %s", strings.Join(e.MissingInTarget, ", "))
	}
	if len(e.MissingInSource) > 0 {
		fmt.Fprintf(&sb, "; missing in source: %s", strings.Join(e.MissingInSource, ", "))
	}
	return sb.String()
}

func (e *AlignmentError) Unwrap() error { return ErrAlignment }

// NewNotFound returns a NotFoundError for resource id.
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// NewValidation returns a ValidationError for field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NewIO returns an IOError.
func NewIO(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// NewParse returns a ParseError at path:line.
func NewParse(format, path string, line int, message string) *ParseError {
	return &ParseError{Format: format, Path: path, Line: line, Message: message}
}

// NewUnsupported returns an UnsupportedError.
func NewUnsupported(feature, reason string) *UnsupportedError {
	return &UnsupportedError{Feature: feature, Reason: reason}
}

// Wrap prefixes err with message, keeping it in the chain. Wrap(nil) is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is is errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
