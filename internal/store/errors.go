package store

import "errors"

type ErrorCode string

const (
	ErrorInvalid         ErrorCode = "invalid"
	ErrorUnauthenticated ErrorCode = "unauthenticated"
	ErrorNotFound        ErrorCode = "not_found"
	ErrorUnavailable     ErrorCode = "unavailable"
)

// StoreError classifies failures raised by the store layer before or after a
// network round trip. Transport errors from the API client are wrapped, not
// converted, so callers can still unwrap the original.
type StoreError struct {
	Code    ErrorCode
	Message string
}

func (e *StoreError) Error() string { return e.Message }

func NewInvalidError(msg string) error { return &StoreError{Code: ErrorInvalid, Message: msg} }
func NewUnauthenticatedError(msg string) error {
	return &StoreError{Code: ErrorUnauthenticated, Message: msg}
}
func NewNotFoundError(msg string) error    { return &StoreError{Code: ErrorNotFound, Message: msg} }
func NewUnavailableError(msg string) error { return &StoreError{Code: ErrorUnavailable, Message: msg} }

func AsStoreError(err error) (*StoreError, bool) {
	var se *StoreError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// errNotLoggedIn is the shared auth-precondition failure: mutating operations
// reject locally, before any network call, when no user is present.
func errNotLoggedIn(action string) error {
	return NewUnauthenticatedError("you must be logged in to " + action)
}
