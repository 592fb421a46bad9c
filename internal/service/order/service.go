package order

import (
	"context"
	"io"
	"log"
	"strings"
	"time"

	"freshbasket/internal/domain"
	"freshbasket/internal/notify"
	orderrepo "freshbasket/internal/repository/order"
	"github.com/google/uuid"
)

type orderRepo interface {
	PlaceFromCart(ctx context.Context, in orderrepo.PlaceFromCartInput) (*domain.Order, error)
	PlaceGuest(ctx context.Context, in orderrepo.PlaceGuestInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByReference(ctx context.Context, reference string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type shopRouter interface {
	Resolve(ctx context.Context, explicitID string, lat, lng *float64) (string, error)
}

type zoneClassifier interface {
	Classify(ctx context.Context, pincode string) (domain.ZoneClass, error)
}

// Service is the order transaction manager: it turns a cart or a guest
// payload into a priced, shop-assigned order in one atomic unit and emits
// notifications after the commit.
type Service struct {
	orders   orderRepo
	users    userRepo
	router   shopRouter
	zones    zoneClassifier
	notifier notify.Notifier
	logger   *log.Logger
}

func New(orders orderRepo, users userRepo, router shopRouter, zones zoneClassifier, notifier notify.Notifier, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{orders: orders, users: users, router: router, zones: zones, notifier: notifier, logger: logger}
}

type ItemInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type PlaceInput struct {
	// Items is only honored for guest orders; authenticated orders always
	// draw from the persisted cart.
	Items   []ItemInput    `json:"items,omitempty"`
	Address domain.Address `json:"delivery_address"`
	ShopID  string         `json:"shop_id,omitempty"`
}

// Place executes the checkout. requesterID is nil for guest orders.
func (s *Service) Place(ctx context.Context, requesterID *string, in PlaceInput) (*domain.Order, error) {
	if err := validateAddress(in.Address); err != nil {
		return nil, err
	}
	if requesterID == nil {
		if len(in.Items) == 0 {
			return nil, &domain.ValidationError{Field: "items", Reason: "required for guest orders"}
		}
		for _, item := range in.Items {
			if item.Quantity <= 0 {
				return nil, domain.ErrInvalidQuantity
			}
			if _, err := uuid.Parse(item.ProductID); err != nil {
				return nil, &domain.ProductNotFoundError{ProductID: item.ProductID}
			}
		}
	}

	zone, err := s.zones.Classify(ctx, in.Address.Pincode)
	if err != nil {
		return nil, err
	}
	shopID, err := s.router.Resolve(ctx, in.ShopID, in.Address.Lat, in.Address.Lng)
	if err != nil {
		return nil, err
	}

	reference := newReference()

	var placed *domain.Order
	if requesterID != nil {
		placed, err = s.orders.PlaceFromCart(ctx, orderrepo.PlaceFromCartInput{
			UserID:    *requesterID,
			ShopID:    shopID,
			Zone:      zone,
			Address:   in.Address,
			Reference: reference,
		})
	} else {
		items := make([]orderrepo.GuestItem, len(in.Items))
		for i, item := range in.Items {
			items[i] = orderrepo.GuestItem{ProductID: item.ProductID, Quantity: item.Quantity}
		}
		placed, err = s.orders.PlaceGuest(ctx, orderrepo.PlaceGuestInput{
			Items:     items,
			ShopID:    shopID,
			Zone:      zone,
			Address:   in.Address,
			Reference: reference,
		})
	}
	if err != nil {
		return nil, err
	}

	s.notifyPlaced(ctx, *placed, requesterID)
	return placed, nil
}

// notifyPlaced runs after the commit; failures are logged, never retried and
// never reported as an order failure.
func (s *Service) notifyPlaced(ctx context.Context, placed domain.Order, requesterID *string) {
	email := placed.Address.Email
	if requesterID != nil {
		if u, err := s.users.GetByID(ctx, *requesterID); err == nil && u.Email != nil {
			email = *u.Email
		} else if err != nil {
			s.logger.Printf("order service: lookup user for notification order=%s error=%v", placed.Reference, err)
		}
	}
	go s.notifier.OrderPlaced(context.Background(), placed, email)
}

// ListMine returns the requester's order history, newest first.
func (s *Service) ListMine(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// GetMine returns one order, only to its owner.
func (s *Service) GetMine(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID == nil || *o.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

// TrackView is the public tracking projection: no address, no cash detail.
type TrackView struct {
	Reference    string             `json:"reference"`
	Status       domain.OrderStatus `json:"status"`
	GrandTotal   float64            `json:"grand_total"`
	CourierName  string             `json:"courier_name,omitempty"`
	CourierPhone string             `json:"courier_phone,omitempty"`
	Lines        []domain.OrderLine `json:"items"`
}

// Track looks an order up by its public reference.
func (s *Service) Track(ctx context.Context, reference string) (*TrackView, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, &domain.ValidationError{Field: "reference", Reason: "required"}
	}
	o, err := s.orders.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	view := &TrackView{
		Reference:  o.Reference,
		Status:     o.Status,
		GrandTotal: o.GrandTotal,
		Lines:      o.Lines,
	}
	if o.CourierID != nil {
		if courier, err := s.users.GetByID(ctx, *o.CourierID); err == nil {
			view.CourierName = courier.Name
			view.CourierPhone = courier.Phone
		}
	}
	return view, nil
}

func validateAddress(a domain.Address) error {
	switch {
	case strings.TrimSpace(a.Name) == "":
		return &domain.ValidationError{Field: "delivery_address.name", Reason: "required"}
	case strings.TrimSpace(a.Phone) == "":
		return &domain.ValidationError{Field: "delivery_address.phone", Reason: "required"}
	case strings.TrimSpace(a.Line1) == "":
		return &domain.ValidationError{Field: "delivery_address.line1", Reason: "required"}
	case strings.TrimSpace(a.Pincode) == "":
		return &domain.ValidationError{Field: "delivery_address.pincode", Reason: "required"}
	}
	if (a.Lat == nil) != (a.Lng == nil) {
		return &domain.ValidationError{Field: "delivery_address", Reason: "lat and lng must be given together"}
	}
	return nil
}

func newReference() string {
	return "FB-" + time.Now().UTC().Format("20060102150405") + "-" + uuid.NewString()[:8]
}
