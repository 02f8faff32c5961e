package domain

import "time"

type CartLine struct {
	ID        string    `json:"id"`
	BuyerID   string    `json:"buyerId"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}

// CartItem is a cart line joined with the product's current price, as read
// inside the checkout transaction. The price here becomes the order line's
// unit price snapshot.
type CartItem struct {
	ProductID      string
	ProductName    string
	Quantity       int
	UnitPriceCents int64
	Currency       string
}
