package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a provider affirmatively has no record for
	// an exact symbol. Never cached, never retried automatically.
	ErrNotFound = errors.New("gene not found")

	// ErrInvalidInput indicates a malformed query, e.g. an empty symbol.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidRecord indicates a record is missing a required field.
	// Cache entries failing this check are dropped on load.
	ErrInvalidRecord = errors.New("invalid gene record")

	// ErrAuthRequired indicates a provider answered with an
	// authentication gate instead of data.
	ErrAuthRequired = errors.New("authentication required")
)

// TransientError classifies a provider failure that may succeed on
// retry: network failure, timeout, unexpected response shape, or an
// authentication wall. It is never conflated with confirmed absence and
// never cached.
type TransientError struct {
	// Provider names the tier that failed.
	Provider string

	// Err is the underlying cause.
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: transient lookup failure: %v", e.Provider, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// Transient wraps err as a TransientError attributed to provider.
func Transient(provider string, err error) *TransientError {
	return &TransientError{Provider: provider, Err: err}
}

// Transientf wraps a formatted message as a TransientError.
func Transientf(provider, format string, args ...any) *TransientError {
	return &TransientError{Provider: provider, Err: fmt.Errorf(format, args...)}
}

// IsNotFound reports whether err indicates confirmed absence.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTransient reports whether err is a retryable provider failure.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// AsTransient returns the TransientError inside err, if any.
func AsTransient(err error) (*TransientError, bool) {
	var te *TransientError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
