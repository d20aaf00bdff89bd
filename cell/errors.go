package cell

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by this package matches exactly one of
// these with errors.Is.
var (
	ErrUnrecognizedValueType     = errors.New("unrecognized value type")
	ErrInvalidURLTypeCombination = errors.New("url can only be specified with 'exp', 'method', 'template', 'string', or 'binary' types")
	ErrMalformedBinaryLiteral    = errors.New("malformed binary literal")
	ErrMalformedGeoLiteral       = errors.New("malformed geospatial literal")
	ErrInvalidBooleanLiteral     = errors.New("boolean must be 'true' or 'false' (case does not matter)")
	ErrDateParse                 = errors.New("could not parse date")
	ErrInvalidDecimalShape       = errors.New("invalid decimal shape")
	ErrUnsupportedRawShape       = errors.New("unsupported raw value shape")
	ErrNumberParse               = errors.New("could not parse number")
	ErrUnknownTag                = errors.New("unknown type")
	ErrAsymmetricNull            = errors.New("null value and null type must go together")
)

// Error describes a value the codec rejected.
type Error struct {
	Kind    error  // One of the Err* values above
	Tag     string // Expected type name, if known
	Literal string // Offending literal or Go type name
	Hint    string // Closest valid type name, for ErrUnknownTag
	Cause   error  // Underlying parser error, if any
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("cell: ")
	b.WriteString(e.Kind.Error())
	if e.Tag != "" {
		fmt.Fprintf(&b, ": type '%s'", e.Tag)
	}
	if e.Literal != "" || e.Tag != "" {
		fmt.Fprintf(&b, ", value '%s'", e.Literal)
	}
	if e.Hint != "" {
		fmt.Fprintf(&b, " (did you mean '%s'?)", e.Hint)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func newError(kind error, tag Tag, literal string, cause error) *Error {
	return &Error{Kind: kind, Tag: tag.String(), Literal: literal, Cause: cause}
}
