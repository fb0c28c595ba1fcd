package model

import (
	"errors"
	"fmt"
)

// Domain errors. Callers classify failures with errors.Is; the HTTP layer
// maps ErrValidation to 400 and ErrNotFound to 404. ErrCircularHierarchy
// wraps ErrValidation so both checks succeed on it.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("record not found")
	ErrCircularHierarchy = fmt.Errorf("circular plot hierarchy: %w", ErrValidation)
)

// ValidationErrorf builds an error that satisfies errors.Is(err, ErrValidation).
func ValidationErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}

// NotFoundErrorf builds an error that satisfies errors.Is(err, ErrNotFound).
func NotFoundErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}
