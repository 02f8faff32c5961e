package domain

import "time"

// Payment status values. A payment is created pending and only ever moves
// through the reconciliation or refund paths afterwards.
const (
	PayPending  = "pending"
	PayPaid     = "paid"
	PayFailed   = "failed"
	PayRefunded = "refunded"
)

type Payment struct {
	ID                   string     `json:"id"`
	OrderID              string     `json:"orderId"`
	BuyerID              string     `json:"buyerId,omitempty"`
	AmountCents          int64      `json:"amountCents"`
	Currency             string     `json:"currency"`
	PaymentMethod        string     `json:"paymentMethod"`
	Status               string     `json:"status"`
	TransactionReference string     `json:"transactionReference"`
	ProviderResponse     []byte     `json:"-"`
	PaidAt               *time.Time `json:"paidAt,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
}
