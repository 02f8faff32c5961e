package order

import (
	"context"

	"storefront-checkout/internal/domain"
)

// CreateOrderInput carries validated checkout fields into the order
// transaction. Totals are computed inside the transaction from the cart
// snapshot, never taken from the caller.
type CreateOrderInput struct {
	OrderID          string
	BuyerID          string
	Name             string
	Address          string
	Country          string
	State            string
	Zip              string
	Phone            string
	Email            string
	PaymentMethod    string
	DeliveryFeeCents int64
	Currency         string
	Note             string
}

type Repository interface {
	// CreateFromCart converts the buyer's cart into an order with immutable
	// line snapshots and clears the cart, all in one transaction.
	CreateFromCart(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// MarkCashPaid flips payment_status unpaid -> paid. Repeated calls are
	// no-ops reporting the current row.
	MarkCashPaid(ctx context.Context, id string) (*domain.Order, error)
	// Cancel marks the order cancelled and stamps cancelled_at. Already
	// cancelled orders are returned unchanged.
	Cancel(ctx context.Context, id string) (*domain.Order, error)
}
