// Package apperror defines the failure taxonomy shared by every service
// operation. Each error carries the HTTP status the transport layer should
// answer with, so handlers never have to know which check failed inside the
// business logic.
package apperror

import (
	"errors"
	"net/http"
)

// Kind sentinels. Check with errors.Is; AppError unwraps to its kind.
var (
	ErrValidation  = errors.New("validation failed")
	ErrAuth        = errors.New("authentication failed")
	ErrNotFound    = errors.New("not found")
	ErrExternal    = errors.New("external service failure")
	ErrPersistence = errors.New("persistence failure")
)

// AppError is the one error type services return to callers. Message is
// safe to show to an end user for 4xx kinds; for 5xx kinds the transport
// layer substitutes a generic message and logs the cause instead.
type AppError struct {
	Kind    error  // one of the sentinels above
	Cause   error  // underlying failure, nil for pure input errors
	Message string // human-readable description
	Status  int    // HTTP status code
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes both the kind sentinel and the underlying cause, so
// errors.Is works against either.
func (e *AppError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// Validation reports malformed or missing caller input.
func Validation(message string) *AppError {
	return &AppError{Kind: ErrValidation, Message: message, Status: http.StatusBadRequest}
}

// Auth reports bad credentials. Callers deliberately reuse one message for
// "unknown user" and "wrong password" so the response shape never reveals
// which check failed.
func Auth(message string) *AppError {
	return &AppError{Kind: ErrAuth, Message: message, Status: http.StatusUnauthorized}
}

// NotFound reports an absent entity.
func NotFound(message string) *AppError {
	return &AppError{Kind: ErrNotFound, Message: message, Status: http.StatusNotFound}
}

// External reports an unreachable or degraded upstream service.
func External(message string, cause error) *AppError {
	return &AppError{Kind: ErrExternal, Cause: cause, Message: message, Status: http.StatusBadGateway}
}

// Persistence reports a storage failure after the transaction rolled back.
func Persistence(message string, cause error) *AppError {
	return &AppError{Kind: ErrPersistence, Cause: cause, Message: message, Status: http.StatusInternalServerError}
}

// StatusOf returns the HTTP status carried by err, or 500 for errors that
// escaped the taxonomy.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
