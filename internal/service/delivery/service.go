package delivery

import (
	"context"
	"io"
	"log"
	"strings"

	"freshbasket/internal/domain"
)

type orderRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByCourier(ctx context.Context, courierID string, statuses []domain.OrderStatus) ([]domain.Order, error)
	Assign(ctx context.Context, orderID, courierID string) (*domain.Order, error)
	Accept(ctx context.Context, orderID, courierID string) (*domain.Order, error)
	Reject(ctx context.Context, orderID, courierID, reason string) (*domain.Order, error)
	MarkOutForDelivery(ctx context.Context, orderID, courierID string) (*domain.Order, error)
	MarkReached(ctx context.Context, orderID, courierID string) (*domain.Order, error)
	CollectCash(ctx context.Context, orderID, courierID string, amount1, amount2 float64) (*domain.Order, error)
	MarkDelivered(ctx context.Context, orderID, courierID string) (*domain.Order, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Service drives the courier-side delivery lifecycle. Every transition is an
// atomic conditional update in the repository; this layer adds the actor
// guards.
type Service struct {
	orders orderRepo
	users  userRepo
	logger *log.Logger
}

func New(orders orderRepo, users userRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{orders: orders, users: users, logger: logger}
}

// Bucket is the courier work-queue partition. It is a read-side filter over
// statuses, not extra states.
type Bucket string

const (
	BucketNew        Bucket = "new"
	BucketInProgress Bucket = "in_progress"
	BucketCompleted  Bucket = "completed"
)

// Assign hands an order to a courier. The operator must be the platform
// admin, or a shop admin assigning a courier of their own shop to an order of
// their own shop.
func (s *Service) Assign(ctx context.Context, operator domain.User, orderID, courierID string) (*domain.Order, error) {
	courier, err := s.users.GetByID(ctx, courierID)
	if err != nil {
		return nil, err
	}
	if courier.Role != domain.RoleCourier {
		return nil, &domain.ValidationError{Field: "delivery_person_id", Reason: "not a courier"}
	}

	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !operator.IsOperatorFor(o.ShopID) {
		return nil, domain.ErrUnauthorized
	}
	if operator.Role == domain.RoleShopAdmin {
		if courier.ShopID == nil || *courier.ShopID != *operator.ShopID {
			return nil, domain.ErrUnauthorized
		}
	}

	assigned, err := s.orders.Assign(ctx, orderID, courierID)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("delivery: assigned order=%s courier=%s by=%s", orderID, courierID, operator.ID)
	return assigned, nil
}

// Accept marks the assigned order as accepted by its courier.
func (s *Service) Accept(ctx context.Context, courier domain.User, orderID string) (*domain.Order, error) {
	if courier.Role != domain.RoleCourier {
		return nil, domain.ErrUnauthorized
	}
	return s.orders.Accept(ctx, orderID, courier.ID)
}

// Reject returns the order to the assignment pool, recording the reason.
func (s *Service) Reject(ctx context.Context, courier domain.User, orderID, reason string) (*domain.Order, error) {
	if courier.Role != domain.RoleCourier {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(reason) == "" {
		return nil, &domain.ValidationError{Field: "reason", Reason: "required"}
	}
	return s.orders.Reject(ctx, orderID, courier.ID, strings.TrimSpace(reason))
}

func (s *Service) MarkOutForDelivery(ctx context.Context, courier domain.User, orderID string) (*domain.Order, error) {
	if courier.Role != domain.RoleCourier {
		return nil, domain.ErrUnauthorized
	}
	return s.orders.MarkOutForDelivery(ctx, orderID, courier.ID)
}

func (s *Service) MarkReached(ctx context.Context, courier domain.User, orderID string) (*domain.Order, error) {
	if courier.Role != domain.RoleCourier {
		return nil, domain.ErrUnauthorized
	}
	return s.orders.MarkReached(ctx, orderID, courier.ID)
}

// CollectCash validates the double-entered amounts against each other and the
// order's grand total before marking payment complete. Any mismatch leaves
// the order untouched.
func (s *Service) CollectCash(ctx context.Context, courier domain.User, orderID string, amount1, amount2 float64) (*domain.Order, error) {
	if courier.Role != domain.RoleCourier {
		return nil, domain.ErrUnauthorized
	}
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.CourierID == nil || *o.CourierID != courier.ID {
		return nil, domain.ErrUnauthorized
	}
	if amount1 != amount2 || amount1 != o.GrandTotal {
		return nil, domain.ErrAmountMismatch
	}
	return s.orders.CollectCash(ctx, orderID, courier.ID, amount1, amount2)
}

// MarkDelivered completes the order. The repository guard refuses the
// transition until cash has been collected.
func (s *Service) MarkDelivered(ctx context.Context, courier domain.User, orderID string) (*domain.Order, error) {
	if courier.Role != domain.RoleCourier {
		return nil, domain.ErrUnauthorized
	}
	return s.orders.MarkDelivered(ctx, orderID, courier.ID)
}

// Queue lists the courier's orders for one work-queue bucket.
func (s *Service) Queue(ctx context.Context, courier domain.User, bucket Bucket) ([]domain.Order, error) {
	if courier.Role != domain.RoleCourier {
		return nil, domain.ErrUnauthorized
	}
	var statuses []domain.OrderStatus
	switch bucket {
	case BucketNew:
		statuses = []domain.OrderStatus{domain.OrderAssigned}
	case BucketInProgress:
		statuses = []domain.OrderStatus{domain.OrderProcessing, domain.OrderOutForDelivery}
	case BucketCompleted:
		statuses = []domain.OrderStatus{domain.OrderDelivered}
	default:
		return nil, &domain.ValidationError{Field: "bucket", Reason: "must be new, in_progress or completed"}
	}
	return s.orders.ListByCourier(ctx, courier.ID, statuses)
}
