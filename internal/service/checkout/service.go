package checkout

import (
	"context"
	"log"
	"strings"

	"storefront-checkout/internal/domain"
	"storefront-checkout/internal/notify"
	orderrepo "storefront-checkout/internal/repository/order"
	"github.com/google/uuid"
)

const maxNoteLength = 1000

type orderRepo interface {
	CreateFromCart(ctx context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error)
}

// Service converts a buyer's cart into a durable order. The conversion is a
// single storage transaction: order, line snapshots and cart clearing commit
// together or not at all.
type Service struct {
	orders   orderRepo
	notifier notify.Notifier
	currency string
	logger   *log.Logger
}

func New(orders orderrepo.Repository, notifier notify.Notifier, currency string, logger *log.Logger) *Service {
	return &Service{orders: orders, notifier: notifier, currency: currency, logger: logger}
}

// Input carries the delivery and payment details for checkout. The buyer id
// comes from the authenticated session, never from the request body.
type Input struct {
	Name             string `json:"name"`
	Address          string `json:"address"`
	Country          string `json:"country"`
	State            string `json:"state"`
	Zip              string `json:"zip"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	PaymentMethod    string `json:"paymentMethod"`
	DeliveryFeeCents int64  `json:"deliveryFeeCents"`
	Note             string `json:"note"`
}

func (s *Service) Checkout(ctx context.Context, buyerID string, in Input) (*domain.Order, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	order, err := s.orders.CreateFromCart(ctx, orderrepo.CreateOrderInput{
		OrderID:          uuid.NewString(),
		BuyerID:          buyerID,
		Name:             strings.TrimSpace(in.Name),
		Address:          strings.TrimSpace(in.Address),
		Country:          strings.TrimSpace(in.Country),
		State:            strings.TrimSpace(in.State),
		Zip:              strings.TrimSpace(in.Zip),
		Phone:            strings.TrimSpace(in.Phone),
		Email:            strings.TrimSpace(strings.ToLower(in.Email)),
		PaymentMethod:    in.PaymentMethod,
		DeliveryFeeCents: in.DeliveryFeeCents,
		Currency:         s.currency,
		Note:             strings.TrimSpace(in.Note),
	})
	if err != nil {
		return nil, err
	}

	// Best effort only. Notifier implementations cannot fail the
	// already-committed order.
	s.notifier.OrderCreated(ctx, order)

	return order, nil
}

func validate(in Input) error {
	required := []struct {
		field string
		value string
	}{
		{"name", in.Name},
		{"address", in.Address},
		{"country", in.Country},
		{"state", in.State},
		{"zip", in.Zip},
		{"phone", in.Phone},
		{"email", in.Email},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return domain.NewValidationError(f.field, "required")
		}
	}
	if !strings.Contains(in.Email, "@") {
		return domain.NewValidationError("email", "malformed")
	}
	if !domain.ValidPaymentMethod(in.PaymentMethod) {
		return domain.NewValidationError("paymentMethod", "must be one of cash, mobile_money, bank_transfer")
	}
	if in.DeliveryFeeCents < 0 {
		return domain.NewValidationError("deliveryFeeCents", "must not be negative")
	}
	if len(in.Note) > maxNoteLength {
		return domain.NewValidationError("note", "too long")
	}
	return nil
}
