package cart

import (
	"context"

	"storefront-checkout/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListByBuyer(ctx context.Context, buyerID string) ([]domain.CartLine, error) {
	const q = `
SELECT id::text, buyer_id, product_id::text, quantity, created_at
FROM cart_lines
WHERE buyer_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(&line.ID, &line.BuyerID, &line.ProductID, &line.Quantity, &line.CreatedAt); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *postgresRepo) AddLine(ctx context.Context, buyerID, productID string, quantity int) error {
	const q = `
INSERT INTO cart_lines (buyer_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (buyer_id, product_id) DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
`
	_, err := r.pool.Exec(ctx, q, buyerID, productID, quantity)
	return err
}

// SnapshotForUpdate reads the buyer's cart lines joined with each product's
// current price, locking the cart rows for the remainder of tx. Callers must
// run it inside the checkout transaction so the prices read here are the ones
// snapshotted onto the order lines.
func SnapshotForUpdate(ctx context.Context, tx pgx.Tx, buyerID string) ([]domain.CartItem, error) {
	const q = `
SELECT cl.product_id::text, p.name, cl.quantity, p.price_cents, p.currency
FROM cart_lines cl
JOIN products p ON p.id = cl.product_id
WHERE cl.buyer_id = $1
ORDER BY cl.created_at ASC
FOR UPDATE OF cl
`
	rows, err := tx.Query(ctx, q, buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPriceCents, &item.Currency); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Clear deletes all of the buyer's cart lines within tx.
func Clear(ctx context.Context, tx pgx.Tx, buyerID string) error {
	_, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE buyer_id = $1`, buyerID)
	return err
}
