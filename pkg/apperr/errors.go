// Package apperr defines the failure categories shared by every use case.
// Domain packages wrap these sentinels so the HTTP boundary can map any
// error to a status code with errors.Is.
package apperr

import "errors"

var (
	// ErrUnauthenticated: missing, invalid or expired token, or the identity
	// behind it is gone or deactivated.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden: the identity is known but the policy denies the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound: the referenced resource or identity does not exist, or is
	// hidden from the caller.
	ErrNotFound = errors.New("not found")
	// ErrValidation: malformed input to an operation.
	ErrValidation = errors.New("validation failed")
	// ErrConflict: a uniqueness constraint would be violated.
	ErrConflict = errors.New("conflict")
)

// Validation wraps msg as an ErrValidation.
func Validation(msg string) error {
	return &validationError{msg: msg}
}

type validationError struct{ msg string }

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return ErrValidation }
