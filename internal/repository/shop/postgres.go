package shop

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

func (r *postgresRepo) ListActive(ctx context.Context) ([]domain.Shop, error) {
	const q = `
SELECT id::text, name, lat, lng, radius_km, active, owner_id::text, created_at
FROM shops
WHERE active
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Shop
	for rows.Next() {
		var s domain.Shop
		if err := rows.Scan(&s.ID, &s.Name, &s.Lat, &s.Lng, &s.RadiusKM, &s.Active, &s.OwnerID, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Shop, error) {
	const q = `
SELECT id::text, name, lat, lng, radius_km, active, owner_id::text, created_at
FROM shops
WHERE id = $1
`
	var s domain.Shop
	err := r.pool.QueryRow(ctx, q, id).Scan(&s.ID, &s.Name, &s.Lat, &s.Lng, &s.RadiusKM, &s.Active, &s.OwnerID, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}
