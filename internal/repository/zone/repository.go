package zone

import (
	"context"

	"freshbasket/internal/domain"
)

type CreateZoneInput struct {
	Name         string
	Pincode      string
	FastDelivery bool
	Approved     bool
	Active       bool
	ShopID       *string
}

type UpdateZoneInput struct {
	Name         string
	Pincode      string
	FastDelivery bool
	Approved     bool
	Active       bool
}

type Repository interface {
	Create(ctx context.Context, in CreateZoneInput) (*domain.DeliveryZone, error)
	Update(ctx context.Context, id string, in UpdateZoneInput) (*domain.DeliveryZone, error)
	GetByID(ctx context.Context, id string) (*domain.DeliveryZone, error)
	// GetActiveApprovedByPincode returns the zone affecting pricing for the
	// pincode, or domain.ErrNotFound when no active approved zone matches.
	GetActiveApprovedByPincode(ctx context.Context, pincode string) (*domain.DeliveryZone, error)
	// List returns every zone regardless of approval state.
	List(ctx context.Context) ([]domain.DeliveryZone, error)
	Approve(ctx context.Context, id string) (*domain.DeliveryZone, error)
}
