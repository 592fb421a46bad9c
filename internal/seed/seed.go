package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"freshbasket/internal/domain"
)

type productSeed struct {
	Name     string
	Price    float64
	TaxRate  float64
	Stock    int
	Variants []variantSeed
}

type variantSeed struct {
	Label string
	Price float64
}

// Result reports the identities created so the caller can mint demo tokens.
type Result struct {
	ShopID     string
	Customer   domain.User
	Courier    domain.User
	ShopAdmin  domain.User
	SuperAdmin domain.User
}

// Apply inserts demo data for manual testing. It is idempotent: rows are
// matched on their natural keys (shop name, user email, zone pincode,
// product name) and updated in place.
func Apply(ctx context.Context, pool *pgxpool.Pool) (*Result, error) {
	shopID, err := ensureShop(ctx, pool, "FreshBasket Central", 12.9716, 77.5946, 12)
	if err != nil {
		return nil, fmt.Errorf("ensure shop: %w", err)
	}

	zones := []struct {
		name    string
		pincode string
		fast    bool
	}{
		{"Central Fast", "560001", true},
		{"Central Standard", "560002", false},
	}
	for _, z := range zones {
		if err := ensureZone(ctx, pool, z.name, z.pincode, z.fast, shopID); err != nil {
			return nil, fmt.Errorf("ensure zone %s: %w", z.pincode, err)
		}
	}

	products := []productSeed{
		{
			Name:    "Chicken Curry Cut",
			Price:   220,
			TaxRate: 5,
			Stock:   40,
			Variants: []variantSeed{
				{Label: "500g", Price: 220},
				{Label: "1kg", Price: 420},
			},
		},
		{Name: "Farm Eggs (12)", Price: 96, TaxRate: 0, Stock: 100},
		{Name: "Mutton Boneless", Price: 780, TaxRate: 5, Stock: 15},
	}
	for _, p := range products {
		if err := ensureProduct(ctx, pool, p); err != nil {
			return nil, fmt.Errorf("ensure product %s: %w", p.Name, err)
		}
	}

	res := &Result{ShopID: shopID}
	users := []struct {
		dst   *domain.User
		name  string
		email string
		role  domain.Role
		shop  *string
	}{
		{&res.Customer, "Demo Customer", "customer@freshbasket.local", domain.RoleCustomer, nil},
		{&res.Courier, "Demo Courier", "courier@freshbasket.local", domain.RoleCourier, &shopID},
		{&res.ShopAdmin, "Demo Shop Admin", "shopadmin@freshbasket.local", domain.RoleShopAdmin, &shopID},
		{&res.SuperAdmin, "Demo Super Admin", "admin@freshbasket.local", domain.RoleSuperAdmin, nil},
	}
	for _, u := range users {
		user, err := ensureUser(ctx, pool, u.name, u.email, u.role, u.shop)
		if err != nil {
			return nil, fmt.Errorf("ensure user %s: %w", u.email, err)
		}
		*u.dst = *user
	}

	return res, nil
}

func ensureShop(ctx context.Context, pool *pgxpool.Pool, name string, lat, lng, radiusKM float64) (string, error) {
	var id string
	err := pool.QueryRow(ctx, `SELECT id::text FROM shops WHERE name = $1`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	const q = `
INSERT INTO shops (name, lat, lng, radius_km, active)
VALUES ($1, $2, $3, $4, TRUE)
RETURNING id::text
`
	if err := pool.QueryRow(ctx, q, name, lat, lng, radiusKM).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureZone(ctx context.Context, pool *pgxpool.Pool, name, pincode string, fast bool, shopID string) error {
	const q = `
INSERT INTO delivery_zones (name, pincode, fast_delivery, approved, active, shop_id)
VALUES ($1, $2, $3, TRUE, TRUE, $4)
ON CONFLICT (pincode) DO UPDATE
SET name = EXCLUDED.name,
    fast_delivery = EXCLUDED.fast_delivery,
    approved = TRUE,
    active = TRUE
`
	_, err := pool.Exec(ctx, q, name, pincode, fast, shopID)
	return err
}

func ensureProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	var id string
	err := pool.QueryRow(ctx, `SELECT id::text FROM products WHERE name = $1`, p.Name).Scan(&id)
	if err != nil {
		const q = `
INSERT INTO products (name, price, tax_rate, stock, active)
VALUES ($1, $2, $3, $4, TRUE)
RETURNING id::text
`
		if err := pool.QueryRow(ctx, q, p.Name, p.Price, p.TaxRate, p.Stock).Scan(&id); err != nil {
			return err
		}
	}
	for _, v := range p.Variants {
		var variantID string
		err := pool.QueryRow(ctx,
			`SELECT id::text FROM product_variants WHERE product_id = $1 AND label = $2`,
			id, v.Label).Scan(&variantID)
		if err == nil {
			continue
		}
		if _, err := pool.Exec(ctx,
			`INSERT INTO product_variants (product_id, label, price) VALUES ($1, $2, $3)`,
			id, v.Label, v.Price); err != nil {
			return err
		}
	}
	return nil
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, name, email string, role domain.Role, shopID *string) (*domain.User, error) {
	const q = `
INSERT INTO users (name, email, role, shop_id)
VALUES ($1, $2, $3, $4)
ON CONFLICT (email) DO UPDATE
SET name = EXCLUDED.name,
    role = EXCLUDED.role,
    shop_id = EXCLUDED.shop_id
RETURNING id::text, name, email, phone, role, shop_id::text
`
	var u domain.User
	if err := pool.QueryRow(ctx, q, name, email, role, shopID).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.ShopID,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
