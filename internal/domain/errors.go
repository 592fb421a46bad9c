package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrEmptyCart indicates a checkout was attempted against a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrDuplicateZone indicates a delivery zone already exists for the pincode.
	ErrDuplicateZone = errors.New("delivery zone already exists for pincode")

	// ErrAmountMismatch indicates the two collected cash amounts disagree with
	// each other or with the order's grand total.
	ErrAmountMismatch = errors.New("collected amounts do not match order total")

	// ErrUnauthorized indicates the actor may not perform the operation.
	ErrUnauthorized = errors.New("not allowed")

	// ErrNotServiceable indicates no active shop delivers to the location.
	ErrNotServiceable = errors.New("location not serviceable")

	// ErrInvalidQuantity indicates a non-positive line quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// ValidationError reports a malformed or missing request field. It is raised
// before any transaction starts.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ProductNotFoundError names the product id that failed to resolve during
// checkout. The whole order transaction is aborted.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

func (e *ProductNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidTransitionError reports a lifecycle guard failure. The order is left
// unchanged.
type InvalidTransitionError struct {
	OrderID string
	From    OrderStatus
	Action  string
	Reason  string
}

func (e *InvalidTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot %s order %s: %s", e.Action, e.OrderID, e.Reason)
	}
	return fmt.Sprintf("cannot %s order %s in status %q", e.Action, e.OrderID, e.From)
}
