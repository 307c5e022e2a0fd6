package domain

import "errors"

var (
	// ErrInvalidPayload is returned when an event body or its data cannot be decoded
	ErrInvalidPayload = errors.New("invalid event payload")

	// ErrUnhandledEvent is returned for events this worker does not process
	ErrUnhandledEvent = errors.New("unhandled event")
)

// RetryableError wraps transient errors that should trigger a requeue
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable error: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryableError creates a new retryable error
func NewRetryableError(err error) error {
	return &RetryableError{Err: err}
}
