package threadbook

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be generic and map well to HTTP-style failure
// classes while staying meaningful to CLI users. Any non-application
// error is reported as EINTERNAL.
const (
	ECONFLICT    = "conflict"    // duplicate post assignment
	EFORMAT      = "format"      // datetime format spec does not match its text
	EINVALID     = "invalid"     // validation failed (bad thread reference, bad argument)
	ENOTFOUND    = "not_found"   // entity does not exist / index out of range
	EPARSE       = "parse"       // required structural element missing or malformed
	EUNAVAILABLE = "unavailable" // thread markup could not be retrieved
	EINTERNAL    = "internal"    // internal error
)

// Error represents an application-specific error. Application errors
// carry a machine-readable code and a human-readable message.
type Error struct {
	// Code is one of the application error codes above.
	Code string

	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface. Not used by the application
// otherwise; prefer ErrorMessage() for user-facing output.
func (e *Error) Error() string {
	return fmt.Sprintf("threadbook error: code=%s message=%s", e.Code, e.Message)
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

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
