package order

import (
	"context"
	"errors"
	"io"
	"log"

	"freshbasket/internal/domain"
	"freshbasket/internal/pricing"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderColumns = `
id::text, reference, user_id::text, shop_id::text, courier_id::text,
status, payment_status,
item_subtotal, tax_amount, delivery_fee, handling_fee, grand_total,
address, reached, cash_collected, collected_amount1, collected_amount2,
rejection_reason, accepted_at, rejected_at, delivered_at, created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

// resolvedLine is a cart or payload line joined with live catalog data.
// LineID is set only for cart lines; it scopes the post-placement delete.
type resolvedLine struct {
	LineID      string
	ProductID   string
	VariantID   *string
	ProductName string
	Quantity    int
	UnitPrice   float64
	TaxRate     float64
}

func (r *postgresRepo) PlaceFromCart(ctx context.Context, in PlaceFromCartInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Row lock on the cart serializes concurrent checkouts of the same cart:
	// the loser of the race sees the already-emptied cart and fails EmptyCart.
	var cartID string
	err = tx.QueryRow(ctx, `
SELECT id::text
FROM carts
WHERE user_id = $1
FOR UPDATE
`, in.UserID).Scan(&cartID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEmptyCart
		}
		return nil, err
	}

	lines, err := resolveCartLines(ctx, tx, cartID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	created, err := insertOrder(ctx, tx, &in.UserID, in.ShopID, in.Reference, in.Address, in.Zone, lines)
	if err != nil {
		return nil, err
	}

	if err := clearLines(ctx, tx, lines); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: placed reference=%s user=%s lines=%d total=%.2f",
		created.Reference, in.UserID, len(created.Lines), created.GrandTotal)
	return created, nil
}

func (r *postgresRepo) PlaceGuest(ctx context.Context, in PlaceGuestInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	lines := make([]resolvedLine, 0, len(in.Items))
	for _, item := range in.Items {
		var line resolvedLine
		err := tx.QueryRow(ctx, `
SELECT id::text, name, price, tax_rate
FROM products
WHERE id = $1 AND active
`, item.ProductID).Scan(&line.ProductID, &line.ProductName, &line.UnitPrice, &line.TaxRate)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, &domain.ProductNotFoundError{ProductID: item.ProductID}
			}
			return nil, err
		}
		line.Quantity = item.Quantity
		lines = append(lines, line)
	}

	created, err := insertOrder(ctx, tx, nil, in.ShopID, in.Reference, in.Address, in.Zone, lines)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: placed guest reference=%s lines=%d total=%.2f",
		created.Reference, len(created.Lines), created.GrandTotal)
	return created, nil
}

func resolveCartLines(ctx context.Context, tx pgx.Tx, cartID string) ([]resolvedLine, error) {
	// Effective unit price is the variant price when a variant is selected,
	// else the base product price; tax rate is always read live.
	rows, err := tx.Query(ctx, `
SELECT cl.id::text, cl.product_id::text, cl.variant_id::text, p.name, cl.quantity,
       COALESCE(v.price, p.price), p.tax_rate
FROM cart_lines cl
JOIN products p ON p.id = cl.product_id
LEFT JOIN product_variants v ON v.id = cl.variant_id
WHERE cl.cart_id = $1
ORDER BY cl.created_at ASC
`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []resolvedLine
	for rows.Next() {
		var line resolvedLine
		if err := rows.Scan(&line.LineID, &line.ProductID, &line.VariantID, &line.ProductName, &line.Quantity, &line.UnitPrice, &line.TaxRate); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// clearLines removes exactly the cart lines that were snapshotted onto the
// order. Cart mutations do not take the cart row lock, so a line committed
// between the snapshot and the delete must survive for the next checkout
// rather than silently vanish.
func clearLines(ctx context.Context, tx pgx.Tx, lines []resolvedLine) error {
	ids := make([]string, len(lines))
	for i, l := range lines {
		ids[i] = l.LineID
	}
	_, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE id = ANY($1)`, ids)
	return err
}

func insertOrder(ctx context.Context, tx pgx.Tx, userID *string, shopID, reference string, addr domain.Address, zone domain.ZoneClass, lines []resolvedLine) (*domain.Order, error) {
	priced := make([]pricing.Line, len(lines))
	for i, l := range lines {
		priced[i] = pricing.Line{UnitPrice: l.UnitPrice, TaxRate: l.TaxRate, Quantity: l.Quantity}
	}
	quote, err := pricing.Compute(priced, zone)
	if err != nil {
		return nil, err
	}

	var o domain.Order
	err = tx.QueryRow(ctx, `
INSERT INTO orders (reference, user_id, shop_id, item_subtotal, tax_amount, delivery_fee, handling_fee, grand_total, address)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING `+orderColumns, reference, userID, shopID,
		quote.ItemSubtotal, quote.TaxAmount, quote.DeliveryFee, quote.HandlingFee, quote.GrandTotal, addr).
		Scan(orderDest(&o)...)
	if err != nil {
		return nil, err
	}

	for _, l := range lines {
		var ol domain.OrderLine
		err := tx.QueryRow(ctx, `
INSERT INTO order_lines (order_id, product_id, variant_id, product_name, quantity, unit_price, tax_rate, line_total)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id::text, order_id::text, product_id::text, variant_id::text, product_name, quantity, unit_price, tax_rate, line_total, created_at
`, o.ID, l.ProductID, l.VariantID, l.ProductName, l.Quantity, l.UnitPrice, l.TaxRate, l.UnitPrice*float64(l.Quantity)).
			Scan(&ol.ID, &ol.OrderID, &ol.ProductID, &ol.VariantID, &ol.ProductName, &ol.Quantity, &ol.UnitPrice, &ol.TaxRate, &ol.LineTotal, &ol.CreatedAt)
		if err != nil {
			return nil, err
		}
		o.Lines = append(o.Lines, ol)
	}
	return &o, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return r.fetchOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

func (r *postgresRepo) GetByReference(ctx context.Context, reference string) (*domain.Order, error) {
	return r.fetchOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE reference = $1`, reference)
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return r.fetchMany(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *postgresRepo) ListByCourier(ctx context.Context, courierID string, statuses []domain.OrderStatus) ([]domain.Order, error) {
	vals := make([]string, len(statuses))
	for i, s := range statuses {
		vals[i] = string(s)
	}
	return r.fetchMany(ctx, `
SELECT `+orderColumns+`
FROM orders
WHERE courier_id = $1 AND status = ANY($2)
ORDER BY created_at DESC`, courierID, vals)
}

func (r *postgresRepo) Assign(ctx context.Context, orderID, courierID string) (*domain.Order, error) {
	return r.transition(ctx, orderID, "assign", "", `
UPDATE orders
SET courier_id = $2, status = 'assigned'
WHERE id = $1 AND status = 'pending'
RETURNING `+orderColumns, orderID, courierID)
}

func (r *postgresRepo) Accept(ctx context.Context, orderID, courierID string) (*domain.Order, error) {
	return r.transition(ctx, orderID, "accept", courierID, `
UPDATE orders
SET status = 'processing', accepted_at = now()
WHERE id = $1 AND courier_id = $2 AND status = 'assigned'
RETURNING `+orderColumns, orderID, courierID)
}

func (r *postgresRepo) Reject(ctx context.Context, orderID, courierID, reason string) (*domain.Order, error) {
	// Rejection returns the order to the assignment pool with the courier
	// cleared; the reason and timestamp stay behind for audit.
	return r.transition(ctx, orderID, "reject", courierID, `
UPDATE orders
SET status = 'pending', courier_id = NULL, rejection_reason = $3, rejected_at = now()
WHERE id = $1 AND courier_id = $2 AND status = 'assigned'
RETURNING `+orderColumns, orderID, courierID, reason)
}

func (r *postgresRepo) MarkOutForDelivery(ctx context.Context, orderID, courierID string) (*domain.Order, error) {
	return r.transition(ctx, orderID, "mark out for delivery", courierID, `
UPDATE orders
SET status = 'out_for_delivery'
WHERE id = $1 AND courier_id = $2 AND status = 'processing'
RETURNING `+orderColumns, orderID, courierID)
}

func (r *postgresRepo) MarkReached(ctx context.Context, orderID, courierID string) (*domain.Order, error) {
	// Reached is an independent flag; the order status is left alone.
	return r.transition(ctx, orderID, "mark reached", courierID, `
UPDATE orders
SET reached = TRUE
WHERE id = $1 AND courier_id = $2
RETURNING `+orderColumns, orderID, courierID)
}

func (r *postgresRepo) CollectCash(ctx context.Context, orderID, courierID string, amount1, amount2 float64) (*domain.Order, error) {
	return r.transition(ctx, orderID, "collect cash", courierID, `
UPDATE orders
SET cash_collected = TRUE, collected_amount1 = $3, collected_amount2 = $4, payment_status = 'completed'
WHERE id = $1 AND courier_id = $2 AND NOT cash_collected
RETURNING `+orderColumns, orderID, courierID, amount1, amount2)
}

func (r *postgresRepo) MarkDelivered(ctx context.Context, orderID, courierID string) (*domain.Order, error) {
	return r.transition(ctx, orderID, "mark delivered", courierID, `
UPDATE orders
SET status = 'delivered', payment_status = 'completed', delivered_at = now()
WHERE id = $1 AND courier_id = $2 AND status = 'out_for_delivery' AND cash_collected
RETURNING `+orderColumns, orderID, courierID)
}

// transition runs a conditional update. When no row matches, the order is
// re-read purely to name the violated guard; the state is left untouched.
func (r *postgresRepo) transition(ctx context.Context, orderID, action, courierID, q string, args ...any) (*domain.Order, error) {
	var o domain.Order
	err := r.pool.QueryRow(ctx, q, args...).Scan(orderDest(&o)...)
	if err == nil {
		lines, err := r.linesFor(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Lines = lines
		r.logger.Printf("order repo: %s order=%s status=%s", action, o.ID, o.Status)
		return &o, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	current, ferr := r.GetByID(ctx, orderID)
	if ferr != nil {
		return nil, ferr
	}
	return nil, guardError(action, current, courierID)
}

func guardError(action string, o *domain.Order, courierID string) error {
	if courierID != "" && (o.CourierID == nil || *o.CourierID != courierID) {
		return domain.ErrUnauthorized
	}
	switch action {
	case "collect cash":
		if o.CashCollected {
			return &domain.InvalidTransitionError{OrderID: o.ID, From: o.Status, Action: action, Reason: "cash already collected"}
		}
	case "mark delivered":
		if !o.CashCollected {
			return &domain.InvalidTransitionError{OrderID: o.ID, From: o.Status, Action: action, Reason: "cash not collected"}
		}
	}
	return &domain.InvalidTransitionError{OrderID: o.ID, From: o.Status, Action: action}
}

func (r *postgresRepo) fetchOne(ctx context.Context, q string, args ...any) (*domain.Order, error) {
	var o domain.Order
	err := r.pool.QueryRow(ctx, q, args...).Scan(orderDest(&o)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	lines, err := r.linesFor(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

func (r *postgresRepo) fetchMany(ctx context.Context, q string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(orderDest(&o)...); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		lines, err := r.linesFor(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Lines = lines
	}
	return result, nil
}

func (r *postgresRepo) linesFor(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	const q = `
SELECT id::text, order_id::text, product_id::text, variant_id::text, product_name, quantity, unit_price, tax_rate, line_total, created_at
FROM order_lines
WHERE order_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.VariantID, &l.ProductName, &l.Quantity, &l.UnitPrice, &l.TaxRate, &l.LineTotal, &l.CreatedAt); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func orderDest(o *domain.Order) []any {
	return []any{
		&o.ID, &o.Reference, &o.UserID, &o.ShopID, &o.CourierID,
		&o.Status, &o.PaymentStatus,
		&o.ItemSubtotal, &o.TaxAmount, &o.DeliveryFee, &o.HandlingFee, &o.GrandTotal,
		&o.Address, &o.Reached, &o.CashCollected, &o.CollectedAmount1, &o.CollectedAmount2,
		&o.RejectionReason, &o.AcceptedAt, &o.RejectedAt, &o.DeliveredAt, &o.CreatedAt,
	}
}
