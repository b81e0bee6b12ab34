package domain

import (
	"errors"
	"fmt"
)

// Domain-level errors. The transport layer maps these onto HTTP statuses:
// not-found conditions to 404, conflicts to 409, everything carrying a
// ValidationError to 400.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrCartNotFound    = errors.New("cart not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrUserNotFound    = errors.New("user not found")

	ErrDuplicateTitle      = errors.New("product title already exists")
	ErrDuplicateSize       = errors.New("size is already available")
	ErrDuplicateEmail      = errors.New("email is already registered")
	ErrOrderNotCancellable = errors.New("order is not cancelable")

	ErrProductDeleted = errors.New("product is deleted")
	ErrCartNotOwned   = errors.New("cart does not belong to this user")
	ErrWrongPassword  = errors.New("invalid email or password")
)

// ValidationError reports a malformed, blank or missing request field.
type ValidationError struct {
	Field   string
	Message string
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// Invalidf builds a ValidationError for the given field.
func Invalidf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
