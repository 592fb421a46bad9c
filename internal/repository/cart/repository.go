package cart

import (
	"context"

	"freshbasket/internal/domain"
)

type Repository interface {
	// EnsureForUser returns the user's cart, creating it if absent.
	EnsureForUser(ctx context.Context, userID string) (*domain.Cart, error)
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	// AddLine inserts a line or increments the quantity of the existing
	// (cart, product, variant) line.
	AddLine(ctx context.Context, cartID, productID string, variantID *string, quantity int) error
	// ChangeLineQuantity sets a line's quantity; zero or below removes the line.
	ChangeLineQuantity(ctx context.Context, cartID, lineID string, quantity int) error
	RemoveLine(ctx context.Context, cartID, lineID string) error
}
