package utils

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the service error taxonomy. Controllers translate
// these to HTTP status codes at the route boundary; anything unmatched is a
// 500 with a generic message.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation")
)

// Validationf wraps a user-visible validation message in ErrValidation.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
