// Package errors provides a structured error type with wrapping and metadata
package errors

// Always import the project errors package as perr (platform/errors)

import (
	stderrs "errors"
	"fmt"
)

// ErrorCode classifies pipeline failures
// Values are stable because they are logged as numbers; add sparingly
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodeConfig is for missing or invalid connector settings
	ErrorCodeConfig

	// ErrorCodeFetch is for transport errors and non-2xx responses from the source
	ErrorCodeFetch

	// ErrorCodeNoContent is for an absent or empty payload handed to the parser
	ErrorCodeNoContent

	// ErrorCodeParse is for malformed tabular content
	ErrorCodeParse

	// ErrorCodeNoRecords is for an absent or empty batch handed to the loader
	ErrorCodeNoRecords

	// ErrorCodeLoad is for store-side write failures not covered below
	ErrorCodeLoad

	// ErrorCodeUnavailable is for transient store errors (network, timeouts, selection)
	ErrorCodeUnavailable

	// ErrorCodeUnauthorized is for store authentication and authorization failures
	ErrorCodeUnauthorized

	// ErrorCodeDuplicateKey is for unique index violations raised by the store
	ErrorCodeDuplicateKey
)

var codeNames = map[ErrorCode]string{
	ErrorCodeUnknown:      "unknown",
	ErrorCodeConfig:       "config",
	ErrorCodeFetch:        "fetch",
	ErrorCodeNoContent:    "no_content",
	ErrorCodeParse:        "parse",
	ErrorCodeNoRecords:    "no_records",
	ErrorCodeLoad:         "load",
	ErrorCodeUnavailable:  "unavailable",
	ErrorCodeUnauthorized: "unauthorized",
	ErrorCodeDuplicateKey: "duplicate_key",
}

// String returns the snake_case name of the code
func (c ErrorCode) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("code(%d)", uint16(c))
}

// Stage buckets a code into the failure taxonomy: fetch, parse, load, config or unknown
func Stage(c ErrorCode) string {
	switch c {
	case ErrorCodeFetch:
		return "fetch"
	case ErrorCodeNoContent, ErrorCodeParse:
		return "parse"
	case ErrorCodeNoRecords, ErrorCodeLoad, ErrorCodeUnavailable, ErrorCodeUnauthorized, ErrorCodeDuplicateKey:
		return "load"
	case ErrorCodeConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Error is the structured error type with wrapping and metadata
// msg is human/developer facing; code is machine facing
// field is optional (config key, column); op is optional operation tag
// orig is the wrapped cause
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
	op    string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the wrapped error, if any
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending field, if any
func (e *Error) Field() string { return e.field }

// Op returns the operation label, if set
func (e *Error) Op() string { return e.op }

// CodeOf extracts an ErrorCode from any error, defaulting to Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err has the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// As unwraps and returns (*Error, true) if err is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Mutators (copy-on-write)

// WithField attaches a field to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		c := *e
		c.field = field
		return &c
	}
	return err
}

// WithOp attaches an operation label to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithOp(err error, op string) error {
	if e, ok := As(err); ok {
		c := *e
		c.op = op
		return &c
	}
	return err
}

// Constructors

// New returns a new *Error with the given code and message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns a new *Error with code and formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns a new *Error that wraps orig with code and message
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf returns a new *Error that wraps orig with code and formatted message
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// Sugar

// Fetchf returns a fetch error
func Fetchf(format string, a ...any) error { return Newf(ErrorCodeFetch, format, a...) }

// Parsef returns a parse error
func Parsef(format string, a ...any) error { return Newf(ErrorCodeParse, format, a...) }

// Loadf returns a load error
func Loadf(format string, a ...any) error { return Newf(ErrorCodeLoad, format, a...) }

// Sentinels for the short-circuit paths. Compare with IsCode, not ==, since
// callers may decorate them with WithOp
var (
	ErrNoContent = New(ErrorCodeNoContent, "no content")
	ErrNoRecords = New(ErrorCodeNoRecords, "no records")
)
