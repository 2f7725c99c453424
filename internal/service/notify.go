package service

import (
	"context"
	"errors"

	"bookreader/internal/domain"
)

// notify reports the outcome of a mutating operation. On failure the message
// depends on the error kind; storeMsg, when set, replaces the generic text for
// storage failures.
func notify(ctx context.Context, emitter EventEmitter, err error, okMsg, storeMsg string) {
	if emitter == nil {
		return
	}
	if err == nil {
		emitter.Emit(ctx, EventNotify, Notification{Level: "success", Message: okMsg})
		return
	}
	emitter.Emit(ctx, EventNotify, Notification{
		Level:   "error",
		Message: failureMessage(err, storeMsg),
		Kind:    domain.ErrorKind(err),
	})
}

func failureMessage(err error, storeMsg string) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateEntry):
		return "This page is already bookmarked"
	case errors.Is(err, domain.ErrOutOfRange):
		return "That bookmark no longer exists"
	case errors.Is(err, domain.ErrInvalidInput):
		var in *inputError
		if errors.As(err, &in) && in.msg != "" {
			return in.msg
		}
		return "Invalid input"
	case errors.Is(err, domain.ErrStorageFailure):
		if storeMsg != "" {
			return storeMsg
		}
		return "Could not save changes to the library"
	default:
		return "Something went wrong"
	}
}

// inputError carries a user-facing message alongside domain.ErrInvalidInput
// and, when the input could not be read, the underlying cause.
type inputError struct {
	msg   string
	cause error
}

func (e *inputError) Error() string {
	if e.cause != nil {
		return domain.ErrInvalidInput.Error() + ": " + e.msg + ": " + e.cause.Error()
	}
	return domain.ErrInvalidInput.Error() + ": " + e.msg
}

func (e *inputError) Unwrap() []error {
	if e.cause != nil {
		return []error{domain.ErrInvalidInput, e.cause}
	}
	return []error{domain.ErrInvalidInput}
}

func invalidInput(msg string) error {
	return &inputError{msg: msg}
}

func unreadableInput(msg string, cause error) error {
	return &inputError{msg: msg, cause: cause}
}
