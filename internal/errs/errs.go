package errs

import "strings"

// codeFor derives the default code of a Kind, e.g. KindNotFound -> "NOT_FOUND".
func codeFor(kind Kind) string {
	return MakeUpperCaseWithUnderscores(strings.ReplaceAll(string(kind), "_", " "))
}

// NewNotFoundError creates a not-found Error.
//
// code is optional; when nil it defaults to "NOT_FOUND".
func NewNotFoundError(message string, code *string) *Error {
	formattedCode := codeFor(KindNotFound)
	if code != nil {
		formattedCode = *code
	}

	return &Error{
		Kind:    KindNotFound,
		Code:    formattedCode,
		Message: message,
	}
}

// NewConstraintViolationError creates an Error for writes rejected by a
// database constraint. fieldErrors is optional.
func NewConstraintViolationError(message string, code *string, fieldErrors []FieldError, cause error) *Error {
	formattedCode := codeFor(KindConstraintViolation)
	if code != nil {
		formattedCode = *code
	}

	return &Error{
		Kind:    KindConstraintViolation,
		Code:    formattedCode,
		Message: message,
		Errors:  fieldErrors,
		Err:     cause,
	}
}

// NewConnectionFailureError creates an Error for an unreachable database.
//
// The message is generic; the driver error is kept in Err for logs.
func NewConnectionFailureError(cause error) *Error {
	return &Error{
		Kind:    KindConnectionFailure,
		Code:    codeFor(KindConnectionFailure),
		Message: "The database is unavailable",
		Err:     cause,
	}
}

// NewQueryFailedError creates an Error for any other failed statement.
func NewQueryFailedError(cause error) *Error {
	return &Error{
		Kind:    KindQueryFailed,
		Code:    codeFor(KindQueryFailed),
		Message: "An error occurred while processing your request",
		Err:     cause,
	}
}

// NewInvalidError creates an Error for rejected input.
func NewInvalidError(message string, fieldErrors []FieldError) *Error {
	return &Error{
		Kind:    KindInvalid,
		Code:    codeFor(KindInvalid),
		Message: message,
		Errors:  fieldErrors,
	}
}

// ValidationError converts a generic validation error into an invalid-input Error.
func ValidationError(err error) *Error {
	return NewInvalidError("Validation failed: "+err.Error(), nil)
}
