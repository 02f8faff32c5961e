package order

import (
	"context"
	"errors"
	"log"

	"storefront-checkout/internal/domain"
	cartrepo "storefront-checkout/internal/repository/cart"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logger}
}

const orderColumns = `
id::text, buyer_id, name, address, country, state, zip, phone, email,
payment_method, delivery_fee_cents, total_cents, currency, status,
delivery_status, payment_status, note, ordered_at, delivered_at, cancelled_at
`

func (r *postgresRepo) CreateFromCart(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	items, err := cartrepo.SnapshotForUpdate(ctx, tx, in.BuyerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	total := domain.OrderTotal(items, in.DeliveryFeeCents)

	const insertOrder = `
INSERT INTO orders (id, buyer_id, name, address, country, state, zip, phone, email,
                    payment_method, delivery_fee_cents, total_cents, currency, note)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING ` + orderColumns
	var out domain.Order
	if err := tx.QueryRow(ctx, insertOrder,
		in.OrderID, in.BuyerID, in.Name, in.Address, in.Country, in.State, in.Zip,
		in.Phone, in.Email, in.PaymentMethod, in.DeliveryFeeCents, total, in.Currency, in.Note,
	).Scan(orderFields(&out)...); err != nil {
		return nil, err
	}

	const insertLine = `
INSERT INTO order_lines (order_id, product_id, product_name, quantity, unit_price_cents)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, order_id::text, product_id::text, product_name, quantity, unit_price_cents, created_at
`
	for _, item := range items {
		var line domain.OrderLine
		if err := tx.QueryRow(ctx, insertLine,
			out.ID, item.ProductID, item.ProductName, item.Quantity, item.UnitPriceCents,
		).Scan(&line.ID, &line.OrderID, &line.ProductID, &line.ProductName, &line.Quantity, &line.UnitPriceCents, &line.CreatedAt); err != nil {
			return nil, err
		}
		out.Lines = append(out.Lines, line)
	}

	if err := cartrepo.Clear(ctx, tx, in.BuyerID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	out, err := r.fetchOrder(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}

	const linesQuery = `
SELECT id::text, order_id::text, product_id::text, product_name, quantity, unit_price_cents, created_at
FROM order_lines
WHERE order_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, linesQuery, out.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.ProductName, &line.Quantity, &line.UnitPriceCents, &line.CreatedAt); err != nil {
			return nil, err
		}
		out.Lines = append(out.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) MarkCashPaid(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
UPDATE orders
SET payment_status = 'paid'
WHERE id = $1 AND payment_status = 'unpaid'
RETURNING ` + orderColumns
	out, err := r.fetchOrder(ctx, q, id)
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	// Either the order does not exist or it was already settled; a plain read
	// distinguishes the two.
	return r.fetchOrder(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

func (r *postgresRepo) Cancel(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
UPDATE orders
SET status = 'cancelled', cancelled_at = now()
WHERE id = $1 AND status <> 'cancelled'
RETURNING ` + orderColumns
	out, err := r.fetchOrder(ctx, q, id)
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return r.fetchOrder(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

func (r *postgresRepo) fetchOrder(ctx context.Context, query string, args ...interface{}) (*domain.Order, error) {
	var out domain.Order
	if err := r.pool.QueryRow(ctx, query, args...).Scan(orderFields(&out)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func orderFields(o *domain.Order) []interface{} {
	return []interface{}{
		&o.ID, &o.BuyerID, &o.Name, &o.Address, &o.Country, &o.State, &o.Zip,
		&o.Phone, &o.Email, &o.PaymentMethod, &o.DeliveryFeeCents, &o.TotalCents,
		&o.Currency, &o.Status, &o.DeliveryStatus, &o.PaymentStatus, &o.Note,
		&o.OrderedAt, &o.DeliveredAt, &o.CancelledAt,
	}
}
