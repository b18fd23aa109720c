package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is the sentinel matched by every InvalidInputError.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError reports a violated precondition on a numeric range or
// ordering. It is the only error kind raised by the calculation core.
type InvalidInputError struct {
	Field      string
	Constraint string
	Value      string
}

func (e *InvalidInputError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid input: %s %s (got %s)", e.Field, e.Constraint, e.Value)
	}
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Constraint)
}

// Is lets callers use errors.Is(err, ErrInvalidInput).
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInvalidInputError creates an InvalidInputError without a recorded value.
func NewInvalidInputError(field, constraint string) error {
	return &InvalidInputError{Field: field, Constraint: constraint}
}

// InvalidDecimal creates an InvalidInputError carrying the offending value.
func InvalidDecimal(field, constraint string, value decimal.Decimal) error {
	return &InvalidInputError{Field: field, Constraint: constraint, Value: value.String()}
}

// InvalidInt creates an InvalidInputError carrying the offending value.
func InvalidInt(field, constraint string, value int) error {
	return &InvalidInputError{Field: field, Constraint: constraint, Value: fmt.Sprintf("%d", value)}
}
