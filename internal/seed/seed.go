package seed

import (
	"context"
	"fmt"
	"time"

	cartrepo "storefront-checkout/internal/repository/cart"
	tokenrepo "storefront-checkout/internal/repository/token"
	authsvc "storefront-checkout/internal/service/auth"
	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	SKU        string
	Name       string
	PriceCents int64
	Currency   string
}

const demoBuyerID = "buyer-demo"

// Apply inserts basic seed data for manual testing: a couple of products, a
// cart for a demo buyer and an access token for them. Idempotent via ON
// CONFLICT upserts.
func Apply(ctx context.Context, pool *pgxpool.Pool) (string, error) {
	products := []productSeed{
		{SKU: "SKU-DEMO-TSHIRT", Name: "Demo T-Shirt", PriceCents: 4500, Currency: "GHS"},
		{SKU: "SKU-DEMO-MUG", Name: "Demo Mug", PriceCents: 2500, Currency: "GHS"},
	}

	ids := make([]string, 0, len(products))
	for _, p := range products {
		id, err := upsertProduct(ctx, pool, p)
		if err != nil {
			return "", fmt.Errorf("upsert product %s: %w", p.SKU, err)
		}
		ids = append(ids, id)
	}

	carts := cartrepo.NewPostgres(pool)
	for _, id := range ids {
		if err := carts.AddLine(ctx, demoBuyerID, id, 1); err != nil {
			return "", fmt.Errorf("add cart line: %w", err)
		}
	}

	auth := authsvc.New(tokenrepo.NewPostgres(pool))
	token, err := auth.Issue(ctx, demoBuyerID, 30*24*time.Hour)
	if err != nil {
		return "", fmt.Errorf("issue demo token: %w", err)
	}
	return token, nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) (string, error) {
	const q = `
INSERT INTO products (sku, name, price_cents, currency)
VALUES ($1, $2, $3, $4)
ON CONFLICT (sku) DO UPDATE SET name = EXCLUDED.name, price_cents = EXCLUDED.price_cents
RETURNING id::text
`
	var id string
	err := pool.QueryRow(ctx, q, p.SKU, p.Name, p.PriceCents, p.Currency).Scan(&id)
	return id, err
}
