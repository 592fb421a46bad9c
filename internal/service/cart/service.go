package cart

import (
	"context"
	"errors"

	"freshbasket/internal/domain"
)

type cartRepo interface {
	EnsureForUser(ctx context.Context, userID string) (*domain.Cart, error)
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	AddLine(ctx context.Context, cartID, productID string, variantID *string, quantity int) error
	ChangeLineQuantity(ctx context.Context, cartID, lineID string, quantity int) error
	RemoveLine(ctx context.Context, cartID, lineID string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type Service struct {
	repo     cartRepo
	products productRepo
}

func New(repo cartRepo, products productRepo) *Service {
	return &Service{repo: repo, products: products}
}

type AddItemInput struct {
	ProductID string  `json:"product_id"`
	VariantID *string `json:"variant_id,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Get returns the user's cart, creating an empty one on first use.
func (s *Service) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.repo.EnsureForUser(ctx, userID)
}

// AddItem adds a product (optionally a specific variant) to the cart.
// Repeated adds of the same (product, variant) increment the existing line.
func (s *Service) AddItem(ctx context.Context, userID string, in AddItemInput) (*domain.Cart, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.ProductNotFoundError{ProductID: in.ProductID}
		}
		return nil, err
	}
	if !product.Active {
		return nil, &domain.ProductNotFoundError{ProductID: in.ProductID}
	}
	if in.VariantID != nil {
		found := false
		for _, v := range product.Variants {
			if v.ID == *in.VariantID {
				found = true
				break
			}
		}
		if !found {
			return nil, &domain.ValidationError{Field: "variant_id", Reason: "not a variant of this product"}
		}
	}

	cart, err := s.repo.EnsureForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddLine(ctx, cart.ID, in.ProductID, in.VariantID, in.Quantity); err != nil {
		return nil, err
	}
	return s.repo.GetByUser(ctx, userID)
}

// ChangeQuantity sets a line quantity; zero or below removes the line.
func (s *Service) ChangeQuantity(ctx context.Context, userID, lineID string, quantity int) (*domain.Cart, error) {
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ChangeLineQuantity(ctx, cart.ID, lineID, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetByUser(ctx, userID)
}

// RemoveItem deletes a line from the cart.
func (s *Service) RemoveItem(ctx context.Context, userID, lineID string) (*domain.Cart, error) {
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.RemoveLine(ctx, cart.ID, lineID); err != nil {
		return nil, err
	}
	return s.repo.GetByUser(ctx, userID)
}
