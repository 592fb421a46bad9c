package zone

import (
	"context"
	"errors"

	"freshbasket/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const zoneColumns = `id::text, name, pincode, fast_delivery, approved, active, shop_id::text, created_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateZoneInput) (*domain.DeliveryZone, error) {
	const q = `
INSERT INTO delivery_zones (name, pincode, fast_delivery, approved, active, shop_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + zoneColumns
	var z domain.DeliveryZone
	err := r.pool.QueryRow(ctx, q, in.Name, in.Pincode, in.FastDelivery, in.Approved, in.Active, in.ShopID).
		Scan(&z.ID, &z.Name, &z.Pincode, &z.FastDelivery, &z.Approved, &z.Active, &z.ShopID, &z.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateZone
		}
		return nil, err
	}
	return &z, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, in UpdateZoneInput) (*domain.DeliveryZone, error) {
	const q = `
UPDATE delivery_zones
SET name = $1, pincode = $2, fast_delivery = $3, approved = $4, active = $5
WHERE id = $6
RETURNING ` + zoneColumns
	var z domain.DeliveryZone
	err := r.pool.QueryRow(ctx, q, in.Name, in.Pincode, in.FastDelivery, in.Approved, in.Active, id).
		Scan(&z.ID, &z.Name, &z.Pincode, &z.FastDelivery, &z.Approved, &z.Active, &z.ShopID, &z.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateZone
		}
		return nil, err
	}
	return &z, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.DeliveryZone, error) {
	const q = `SELECT ` + zoneColumns + ` FROM delivery_zones WHERE id = $1`
	return r.scanOne(ctx, q, id)
}

func (r *postgresRepo) GetActiveApprovedByPincode(ctx context.Context, pincode string) (*domain.DeliveryZone, error) {
	const q = `SELECT ` + zoneColumns + ` FROM delivery_zones WHERE pincode = $1 AND active AND approved`
	return r.scanOne(ctx, q, pincode)
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.DeliveryZone, error) {
	const q = `SELECT ` + zoneColumns + ` FROM delivery_zones ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DeliveryZone
	for rows.Next() {
		var z domain.DeliveryZone
		if err := rows.Scan(&z.ID, &z.Name, &z.Pincode, &z.FastDelivery, &z.Approved, &z.Active, &z.ShopID, &z.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, z)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Approve(ctx context.Context, id string) (*domain.DeliveryZone, error) {
	const q = `
UPDATE delivery_zones
SET approved = TRUE
WHERE id = $1
RETURNING ` + zoneColumns
	return r.scanOne(ctx, q, id)
}

func (r *postgresRepo) scanOne(ctx context.Context, q string, args ...any) (*domain.DeliveryZone, error) {
	var z domain.DeliveryZone
	err := r.pool.QueryRow(ctx, q, args...).
		Scan(&z.ID, &z.Name, &z.Pincode, &z.FastDelivery, &z.Approved, &z.Active, &z.ShopID, &z.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &z, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
