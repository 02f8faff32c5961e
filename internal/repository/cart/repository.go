package cart

import (
	"context"

	"storefront-checkout/internal/domain"
)

type Repository interface {
	ListByBuyer(ctx context.Context, buyerID string) ([]domain.CartLine, error)
	AddLine(ctx context.Context, buyerID, productID string, quantity int) error
}
