package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or out-of-vocabulary input.
	ErrValidation = errors.New("validation failed")
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrTaskNotFound is returned when the task being read or changed does not exist.
	ErrTaskNotFound = errors.New("task not found")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError describes which input field was rejected and why.
// It matches ErrValidation with errors.Is and unwraps to its cause.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func invalidCause(field string, err error) error {
	return &ValidationError{Field: field, Reason: err.Error(), Err: err}
}
