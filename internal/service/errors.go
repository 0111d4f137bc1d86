package service

import (
	"errors"

	"github.com/psicocare/psicocare_bot/internal/api"
)

var (
	ErrTooManyAttempts = errors.New("too many login attempts")
	ErrForbidden       = errors.New("action not allowed for this role")
	ErrMissingFields   = errors.New("missing required fields")
	ErrInvalidRole     = errors.New("invalid account type")
)

// InputError is a malformed value caught before any request is issued.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return e.Reason
}

// FailureError is a backend or transport failure, carrying the text to show the user.
type FailureError struct {
	Message string
	Err     error
}

func (e *FailureError) Error() string {
	return e.Message
}

func (e *FailureError) Unwrap() error {
	return e.Err
}

func failure(err error, fallback string) *FailureError {
	return &FailureError{Message: api.Message(err, fallback), Err: err}
}
