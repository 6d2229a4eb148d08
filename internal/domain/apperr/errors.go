package apperr

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel kinds. Detail errors below match them through errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidState      = errors.New("invalid state")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrOutOfRange        = errors.New("amount out of range")
	ErrPersistence       = errors.New("persistence failure")
	// ErrInvalidInput covers malformed fields that carry no amount.
	ErrInvalidInput = errors.New("invalid input")
)

// Invalid reports a malformed field.
func Invalid(field, reason string) error {
	return fmt.Errorf("%s %s: %w", field, reason, ErrInvalidInput)
}

// NotFound reports a missing entity.
func NotFound(entity, id string) error {
	return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
}

// Persistence wraps a store-level fault.
func Persistence(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrPersistence, err)
}

// TransitionError is returned when a status change is not in the transition table.
type TransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s cannot move from %s to %s", e.Entity, e.From, e.To)
}

func (e *TransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// StateError is returned when an operation is not allowed for the entity's current status.
type StateError struct {
	Entity string
	ID     string
	Status string
	Op     string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s %s %s in status %s", e.Op, e.Entity, e.ID, e.Status)
}

func (e *StateError) Is(target error) bool { return target == ErrInvalidState }

// RangeError reports a requested amount outside a product's bounds.
type RangeError struct {
	Amount decimal.Decimal
	Min    decimal.Decimal
	Max    decimal.Decimal
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("requested amount %s outside [%s, %s]", e.Amount, e.Min, e.Max)
}

func (e *RangeError) Is(target error) bool { return target == ErrOutOfRange }

// AmountError reports a non-positive or over-limit numeric input.
type AmountError struct {
	Field  string
	Amount decimal.Decimal
	Reason string
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("%s %s %s", e.Field, e.Amount, e.Reason)
}

func (e *AmountError) Is(target error) bool { return target == ErrInvalidAmount }

// IsBusiness reports whether err is a rule violation rather than a store fault.
func IsBusiness(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrOutOfRange) ||
		errors.Is(err, ErrInvalidInput)
}
