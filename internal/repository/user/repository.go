package user

import (
	"context"

	"freshbasket/internal/domain"
)

type CreateUserInput struct {
	Name   string
	Email  *string
	Phone  string
	Role   domain.Role
	ShopID *string
}

type Repository interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
