package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInvalidTransition  = errors.New("invalid state transition")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrCurrencyMismatch   = errors.New("currency mismatch")
)

// InfraError wraps a storage or I/O failure so handlers can tell
// "your request is invalid" apart from "the store is unavailable".
type InfraError struct {
	Op  string
	Err error
}

func (e *InfraError) Error() string {
	return fmt.Sprintf("infrastructure error in %s: %v", e.Op, e.Err)
}

func (e *InfraError) Unwrap() error { return e.Err }

func Infra(op string, err error) error {
	return &InfraError{Op: op, Err: err}
}
