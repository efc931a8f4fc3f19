package protocol

import (
	"errors"
	"fmt"
)

// Error types for protocol and session failure scenarios.
var (
	// ErrInvalidSessionState is returned when a command targets a session
	// that was never initialized.
	ErrInvalidSessionState = errors.New("invalid session state")

	// ErrSessionDisposed is returned when a command targets a session after
	// dispose. Pending completions fail with this instead of hanging.
	ErrSessionDisposed = errors.New("session disposed")

	// ErrInvalidReference is returned when a playlist mutation references an
	// id that does not resolve to a live concatenating source.
	ErrInvalidReference = errors.New("invalid source reference")

	// ErrIndexOutOfRange is returned when a playlist mutation index falls
	// outside the valid bound for the target source.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrUnsupportedOperation is returned by engine backends that do not
	// implement a given capability. Callers can feature-detect on it.
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

// DecodeError reports malformed or unrecognized wire data: an unknown type
// discriminator, an out-of-range enum ordinal, or a missing required field.
// It is always raised before any state is mutated.
type DecodeError struct {
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decode: %s", e.Reason)
	}
	return fmt.Sprintf("decode %q: %s", e.Field, e.Reason)
}

func decodeErrorf(field, format string, args ...interface{}) error {
	return &DecodeError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsDecodeError reports whether err is (or wraps) a DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
