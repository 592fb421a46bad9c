package shop

import (
	"context"

	"freshbasket/internal/domain"
)

type Repository interface {
	ListActive(ctx context.Context) ([]domain.Shop, error)
	GetByID(ctx context.Context, id string) (*domain.Shop, error)
}
