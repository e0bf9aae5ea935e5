// Package errs define custom error types and utilities.
//
// Its purpose is to give callers of the data-access layer a
// distinguishable failure kind (not found, constraint violation,
// connection failure, query failure, invalid input) instead of an
// empty result that looks like "nothing matched".
//
// - Return consistent error shapes (JSON-serializable).
// - Support field-level validation errors for inputs.
// - Provide errors that play nicely with Go's standard errors package.
package errs

import "strings"

// FieldError represents a field-level error.
// Example:
//
//	{ "field": "email", "error": "must be a valid email address" }
type FieldError struct {
	// Field is the field name/key the error relates to (e.g. "email").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// Kind classifies a failure.
type Kind string

const (
	// KindNotFound means the requested record does not exist.
	KindNotFound Kind = "not_found"

	// KindConstraintViolation means the database rejected a write because of
	// a unique, foreign key, not-null or check constraint.
	KindConstraintViolation Kind = "constraint_violation"

	// KindConnectionFailure means the database could not be reached.
	KindConnectionFailure Kind = "connection_failure"

	// KindQueryFailed covers every other statement execution failure.
	KindQueryFailed Kind = "query_failed"

	// KindInvalid means the caller supplied unusable input.
	KindInvalid Kind = "invalid"
)

// Error is the main custom error type of the application.
//
// It implements the `error` interface via Error() and is designed to be
// serialized directly to JSON.
// Fields:
//   - Kind: failure classification, used by errors.Is.
//   - Code: machine-friendly error code (e.g. "USER_ALREADY_EXISTS").
//   - Message: human-friendly message.
//   - Errors: list of per-field errors.
//   - Err: the underlying driver error, never serialized.
type Error struct {
	Kind    Kind         `json:"kind"`
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`

	Err error `json:"-"`
}

// Sentinel values usable as errors.Is targets.
var (
	ErrNotFound            = &Error{Kind: KindNotFound}
	ErrConstraintViolation = &Error{Kind: KindConstraintViolation}
	ErrConnectionFailure   = &Error{Kind: KindConnectionFailure}
	ErrQueryFailed         = &Error{Kind: KindQueryFailed}
	ErrInvalid             = &Error{Kind: KindInvalid}
)

// Error makes *Error satisfy the built-in `error` interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying driver error to errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
//
// Code and Message are not compared, so
//
//	errors.Is(err, errs.ErrNotFound)
//
// holds for every not-found error regardless of entity.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// WithMessage returns a *copy* of this Error with Message replaced.
func (e *Error) WithMessage(message string) *Error {
	return &Error{
		Kind:    e.Kind,
		Code:    e.Code,
		Message: message,
		Errors:  e.Errors,
		Err:     e.Err,
	}
}

// ExitCode maps the Kind onto a process exit status for the CLI.
func (e *Error) ExitCode() int {
	switch e.Kind {
	case KindInvalid:
		return 2
	case KindNotFound:
		return 3
	case KindConstraintViolation:
		return 4
	case KindConnectionFailure:
		return 5
	default:
		return 1
	}
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"not found" -> "NOT_FOUND"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
