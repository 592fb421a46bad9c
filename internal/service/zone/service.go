package zone

import (
	"context"
	"errors"
	"strings"

	"freshbasket/internal/domain"
	zonerepo "freshbasket/internal/repository/zone"
)

type zoneRepo interface {
	Create(ctx context.Context, in zonerepo.CreateZoneInput) (*domain.DeliveryZone, error)
	Update(ctx context.Context, id string, in zonerepo.UpdateZoneInput) (*domain.DeliveryZone, error)
	GetByID(ctx context.Context, id string) (*domain.DeliveryZone, error)
	GetActiveApprovedByPincode(ctx context.Context, pincode string) (*domain.DeliveryZone, error)
	List(ctx context.Context) ([]domain.DeliveryZone, error)
	Approve(ctx context.Context, id string) (*domain.DeliveryZone, error)
}

type Service struct {
	repo zoneRepo
}

func New(repo zoneRepo) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Name         string `json:"name"`
	Pincode      string `json:"pincode"`
	FastDelivery bool   `json:"fastDelivery"`
	Active       bool   `json:"active"`
}

type UpdateInput struct {
	Name         string `json:"name"`
	Pincode      string `json:"pincode,omitempty"`
	FastDelivery bool   `json:"fastDelivery"`
	Active       bool   `json:"active"`
}

// CheckResult is the storefront "check my pincode" answer. Unapproved and
// inactive zones report as unavailable standard delivery.
type CheckResult struct {
	Available    bool   `json:"available"`
	FastDelivery bool   `json:"fast_delivery"`
	ZoneName     string `json:"zone_name,omitempty"`
}

// Create registers a zone for the actor. Zones created by shop admins start
// unapproved and need a platform-admin approval before they affect pricing;
// platform-admin zones are live immediately.
func (s *Service) Create(ctx context.Context, actor domain.User, in CreateInput) (*domain.DeliveryZone, error) {
	pincode := strings.TrimSpace(in.Pincode)
	if pincode == "" {
		return nil, &domain.ValidationError{Field: "pincode", Reason: "required"}
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "required"}
	}
	if actor.Role != domain.RoleSuperAdmin && actor.Role != domain.RoleShopAdmin {
		return nil, domain.ErrUnauthorized
	}

	create := zonerepo.CreateZoneInput{
		Name:         strings.TrimSpace(in.Name),
		Pincode:      pincode,
		FastDelivery: in.FastDelivery,
		Approved:     actor.Role == domain.RoleSuperAdmin,
		Active:       in.Active,
		ShopID:       actor.ShopID,
	}
	return s.repo.Create(ctx, create)
}

// Update edits a zone. Shop admins may only touch zones of their own shop,
// and their edits revoke any prior approval so the platform admin re-reviews
// the changed fee terms; platform-admin edits keep the approval as is.
func (s *Service) Update(ctx context.Context, actor domain.User, id string, in UpdateInput) (*domain.DeliveryZone, error) {
	if actor.Role != domain.RoleSuperAdmin && actor.Role != domain.RoleShopAdmin {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "required"}
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleShopAdmin {
		if current.ShopID == nil || actor.ShopID == nil || *current.ShopID != *actor.ShopID {
			return nil, domain.ErrUnauthorized
		}
	}

	pincode := strings.TrimSpace(in.Pincode)
	if pincode == "" {
		pincode = current.Pincode
	}
	approved := current.Approved && actor.Role == domain.RoleSuperAdmin

	return s.repo.Update(ctx, id, zonerepo.UpdateZoneInput{
		Name:         strings.TrimSpace(in.Name),
		Pincode:      pincode,
		FastDelivery: in.FastDelivery,
		Approved:     approved,
		Active:       in.Active,
	})
}

// Approve flips the approval flag. Platform administrators only.
func (s *Service) Approve(ctx context.Context, actor domain.User, id string) (*domain.DeliveryZone, error) {
	if actor.Role != domain.RoleSuperAdmin {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.Approve(ctx, id)
}

// List returns every zone, pending ones included, for the operator screens.
func (s *Service) List(ctx context.Context, actor domain.User) ([]domain.DeliveryZone, error) {
	if actor.Role != domain.RoleSuperAdmin && actor.Role != domain.RoleShopAdmin {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.List(ctx)
}

// Classify maps a pincode to the fee classification used by pricing. Only
// active approved zones count; anything else is unknown.
func (s *Service) Classify(ctx context.Context, pincode string) (domain.ZoneClass, error) {
	z, err := s.repo.GetActiveApprovedByPincode(ctx, strings.TrimSpace(pincode))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ZoneUnknown, nil
		}
		return domain.ZoneUnknown, err
	}
	if z.FastDelivery {
		return domain.ZoneFast, nil
	}
	return domain.ZoneStandard, nil
}

// Check answers the public pincode availability query.
func (s *Service) Check(ctx context.Context, pincode string) (CheckResult, error) {
	pincode = strings.TrimSpace(pincode)
	if pincode == "" {
		return CheckResult{}, &domain.ValidationError{Field: "pincode", Reason: "required"}
	}
	z, err := s.repo.GetActiveApprovedByPincode(ctx, pincode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return CheckResult{Available: false, FastDelivery: false}, nil
		}
		return CheckResult{}, err
	}
	return CheckResult{Available: true, FastDelivery: z.FastDelivery, ZoneName: z.Name}, nil
}
