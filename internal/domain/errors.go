package domain

import "errors"

// Error kinds surfaced by the library services. Callers match them with
// errors.Is; storage and service layers wrap them with context.
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrOutOfRange     = errors.New("position out of range")
	ErrStorageFailure = errors.New("storage failure")
	ErrNotFound       = errors.New("not found")
)

// ErrorKind returns a stable identifier for err, used by the frontend to
// pick a message. Unknown errors are reported as "internal".
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrDuplicateEntry):
		return "duplicate_entry"
	case errors.Is(err, ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrStorageFailure):
		return "storage_failure"
	default:
		return "internal"
	}
}
