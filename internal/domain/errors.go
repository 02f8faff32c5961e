package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrEmptyCart is returned when checkout finds no cart lines for the buyer.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrOrderNotPayable is returned when payment is initiated for an order
	// that is not in a payable state.
	ErrOrderNotPayable = errors.New("order not payable")
	// ErrUnsupportedMethod is returned when an operation does not apply to the
	// order's payment method.
	ErrUnsupportedMethod = errors.New("unsupported payment method")
	// ErrInvalidSignature indicates a webhook body failed signature verification.
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrPaymentNotFound indicates no payment matches a transaction reference.
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrRefundFailed indicates the gateway refund call did not succeed. The
	// order is still cancelled; an operator must re-drive the refund.
	ErrRefundFailed = errors.New("refund failed")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
