package cart

import (
	"context"
	"os"
	"testing"

	"storefront-checkout/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
)

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE payments, order_lines, orders, cart_lines, products, tokens CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
	return pool
}

func TestPostgres_AddLineMergesQuantity(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	var productID string
	err := pool.QueryRow(ctx,
		`INSERT INTO products (sku, name, price_cents) VALUES ('SKU-1', 'Shea Butter', 1000) RETURNING id::text`,
	).Scan(&productID)
	if err != nil {
		t.Fatalf("insert product: %v", err)
	}

	repo := NewPostgres(pool)
	if err := repo.AddLine(ctx, "buyer-1", productID, 1); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if err := repo.AddLine(ctx, "buyer-1", productID, 2); err != nil {
		t.Fatalf("repeat AddLine: %v", err)
	}

	lines, err := repo.ListByBuyer(ctx, "buyer-1")
	if err != nil {
		t.Fatalf("ListByBuyer: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", lines[0].Quantity)
	}

	other, err := repo.ListByBuyer(ctx, "buyer-2")
	if err != nil {
		t.Fatalf("ListByBuyer: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("carts must be scoped per buyer")
	}
}
