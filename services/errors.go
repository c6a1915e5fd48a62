package services

import (
	"errors"
	"fmt"
)

// ValidationError is a caller mistake; controllers map it to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

var (
	ErrNotFound = errors.New("not found")

	ErrInsufficientStock   = &ValidationError{Message: "insufficient stock"}
	ErrInvalidCommission   = &ValidationError{Message: "washer and company commission percentages must sum to 100"}
	ErrInvalidTransition   = &ValidationError{Message: "invalid status transition"}
	ErrInsufficientBalance = &ValidationError{Message: "requested amount exceeds available balance"}
	ErrInvalidOperator     = &ValidationError{Message: "unsupported milestone operator"}
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountDisabled     = errors.New("account is disabled")
)

func notFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
