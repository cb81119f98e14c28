package document

import (
	"errors"
	"fmt"
)

// Sentinel error categories for frontmatter parsing and validation.
// All of them are caller-input errors, never transient.
var (
	ErrMalformedFrontmatter = errors.New("malformed frontmatter")
	ErrMissingField         = errors.New("missing required field")
	ErrInvalidDate          = errors.New("invalid date")
	ErrUnknownKind          = errors.New("unknown document kind")
)

// ParseError describes a failure while decoding or validating a document.
// It wraps one of the sentinel errors above so callers can match with
// errors.Is while still seeing the offending field or value.
type ParseError struct {
	Err   error
	Field string // set for ErrMissingField
	Value string // set for ErrInvalidDate
}

func (e *ParseError) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("document: %v: %s", e.Err, e.Field)
	case e.Value != "":
		return fmt.Sprintf("document: %v: %q", e.Err, e.Value)
	default:
		return fmt.Sprintf("document: %v", e.Err)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

func malformed() error {
	return &ParseError{Err: ErrMalformedFrontmatter}
}

func missingField(field string) error {
	return &ParseError{Err: ErrMissingField, Field: field}
}

func invalidDate(value string) error {
	return &ParseError{Err: ErrInvalidDate, Value: value}
}

func unknownKind() error {
	return &ParseError{Err: ErrUnknownKind}
}
