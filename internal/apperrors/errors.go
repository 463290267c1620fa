package apperrors

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrRatesUnavailable indicates that no rate snapshot has ever been fetched
// and no stale cache exists. Snapshot-dependent requests fail with this until
// the first successful refresh.
var ErrRatesUnavailable = errors.New("fx rates unavailable: no snapshot has been fetched yet")

// AppError wraps an underlying error with an HTTP-ish status code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with the given status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError creates an AppError wrapping ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// MissingQuoteError is returned when a snapshot rebase requests a base
// currency absent from the canonical snapshot. It carries the requested base
// and the snapshot's as-of timestamp so callers can build an actionable
// message.
type MissingQuoteError struct {
	Base string
	AsOf time.Time
}

func (e *MissingQuoteError) Error() string {
	return fmt.Sprintf("no quote for base currency %s in snapshot as of %s", e.Base, e.AsOf.Format(time.RFC3339))
}

func (e *MissingQuoteError) Unwrap() error {
	return ErrValidation
}

// ThrottledError is returned when a manual refresh is requested inside the
// cooldown window. It is not a subsystem failure; RetryAfter hints when the
// caller may try again.
type ThrottledError struct {
	RetryAfter time.Duration
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("refresh throttled, retry after %ds", int(e.RetryAfter.Seconds()))
}
