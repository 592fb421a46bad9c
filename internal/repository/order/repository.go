package order

import (
	"context"

	"freshbasket/internal/domain"
)

// PlaceFromCartInput places an order from the user's persisted cart. Line
// items and live prices are resolved inside the placement transaction.
type PlaceFromCartInput struct {
	UserID    string
	ShopID    string
	Zone      domain.ZoneClass
	Address   domain.Address
	Reference string
}

type GuestItem struct {
	ProductID string
	Quantity  int
}

// PlaceGuestInput places an order from an explicit item payload. Guest orders
// always use the base product price.
type PlaceGuestInput struct {
	Items     []GuestItem
	ShopID    string
	Zone      domain.ZoneClass
	Address   domain.Address
	Reference string
}

type Repository interface {
	PlaceFromCart(ctx context.Context, in PlaceFromCartInput) (*domain.Order, error)
	PlaceGuest(ctx context.Context, in PlaceGuestInput) (*domain.Order, error)

	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByReference(ctx context.Context, reference string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListByCourier(ctx context.Context, courierID string, statuses []domain.OrderStatus) ([]domain.Order, error)

	// Lifecycle transitions. Each is a single conditional update; a failed
	// guard leaves the row untouched and returns a taxonomy error.
	Assign(ctx context.Context, orderID, courierID string) (*domain.Order, error)
	Accept(ctx context.Context, orderID, courierID string) (*domain.Order, error)
	Reject(ctx context.Context, orderID, courierID, reason string) (*domain.Order, error)
	MarkOutForDelivery(ctx context.Context, orderID, courierID string) (*domain.Order, error)
	MarkReached(ctx context.Context, orderID, courierID string) (*domain.Order, error)
	CollectCash(ctx context.Context, orderID, courierID string, amount1, amount2 float64) (*domain.Order, error)
	MarkDelivered(ctx context.Context, orderID, courierID string) (*domain.Order, error)
}
