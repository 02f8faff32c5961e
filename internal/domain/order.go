package domain

import "time"

// Order status values.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

// Order payment_status values.
const (
	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Delivery status values.
const (
	DeliveryPending   = "pending"
	DeliveryDelivered = "delivered"
	DeliveryReturned  = "returned"
)

// Payment methods accepted at checkout.
const (
	MethodCash         = "cash"
	MethodMobileMoney  = "mobile_money"
	MethodBankTransfer = "bank_transfer"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case MethodCash, MethodMobileMoney, MethodBankTransfer:
		return true
	}
	return false
}

// OrderTotal computes the order total from snapshot items plus the delivery
// fee. The result is fixed at checkout and never recomputed from live prices.
func OrderTotal(items []CartItem, deliveryFeeCents int64) int64 {
	total := deliveryFeeCents
	for _, item := range items {
		total += item.UnitPriceCents * int64(item.Quantity)
	}
	return total
}

type Order struct {
	ID               string      `json:"id"`
	BuyerID          string      `json:"buyerId"`
	Name             string      `json:"name"`
	Address          string      `json:"address"`
	Country          string      `json:"country"`
	State            string      `json:"state"`
	Zip              string      `json:"zip"`
	Phone            string      `json:"phone"`
	Email            string      `json:"email"`
	PaymentMethod    string      `json:"paymentMethod"`
	DeliveryFeeCents int64       `json:"deliveryFeeCents"`
	TotalCents       int64       `json:"totalCents"`
	Currency         string      `json:"currency"`
	Status           string      `json:"status"`
	DeliveryStatus   string      `json:"deliveryStatus"`
	PaymentStatus    string      `json:"paymentStatus"`
	Note             string      `json:"note,omitempty"`
	OrderedAt        time.Time   `json:"orderedAt"`
	DeliveredAt      *time.Time  `json:"deliveredAt,omitempty"`
	CancelledAt      *time.Time  `json:"cancelledAt,omitempty"`
	Lines            []OrderLine `json:"lines,omitempty"`
}

// OrderLine is an immutable snapshot of a cart line at checkout time.
// UnitPriceCents and ProductName are copied from the product as priced when
// the order was placed and never track later catalog changes.
type OrderLine struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"orderId"`
	ProductID      string    `json:"productId"`
	ProductName    string    `json:"productName"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	CreatedAt      time.Time `json:"createdAt"`
}
