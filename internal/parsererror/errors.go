// Package parsererror defines the error types produced while acquiring and
// normalizing a portfolio export.
package parsererror

import (
	"errors"
	"fmt"
)

// ErrUnparseable marks a value that could not be reduced to a finite number
// or a calendar date. It is distinct from a legitimate zero.
var ErrUnparseable = errors.New("unparseable value")

// ErrMissingField marks a row that lacks a field its section requires.
var ErrMissingField = errors.New("missing required field")

// ParseError represents a failure to coerce one field of one row.
type ParseError struct {
	Section string
	Field   string
	Value   string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Section, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError builds a ParseError wrapping ErrUnparseable together with the
// underlying cause, if any.
func NewParseError(section, field, value string, cause error) *ParseError {
	err := ErrUnparseable
	if cause != nil {
		err = fmt.Errorf("%w: %v", ErrUnparseable, cause)
	}
	return &ParseError{Section: section, Field: field, Value: value, Err: err}
}

// InvalidDocumentError is returned by document acquisition when the input is
// not an object keyed by section name.
type InvalidDocumentError struct {
	Source string
	Reason string
	Err    error
}

func (e *InvalidDocumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid portfolio document '%s': %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid portfolio document '%s': %s", e.Source, e.Reason)
}

func (e *InvalidDocumentError) Unwrap() error {
	return e.Err
}

// IsUnparseable reports whether err is, or wraps, ErrUnparseable.
func IsUnparseable(err error) bool {
	return errors.Is(err, ErrUnparseable)
}
