package user

import (
	"context"
	"errors"

	"freshbasket/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	const q = `
INSERT INTO users (name, email, phone, role, shop_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, name, email, phone, role, shop_id::text, created_at
`
	var u domain.User
	err := r.pool.QueryRow(ctx, q, in.Name, in.Email, in.Phone, in.Role, in.ShopID).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.ShopID, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `
SELECT id::text, name, email, phone, role, shop_id::text, created_at
FROM users
WHERE id = $1
`
	var u domain.User
	err := r.pool.QueryRow(ctx, q, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.ShopID, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
