package payment

import (
	"context"
	"time"

	"storefront-checkout/internal/domain"
)

type CreatePaymentInput struct {
	PaymentID            string
	OrderID              string
	BuyerID              string
	AmountCents          int64
	Currency             string
	PaymentMethod        string
	TransactionReference string
}

// ApplyOutcomeInput carries a translated gateway outcome into the conditional
// state transition.
type ApplyOutcomeInput struct {
	Reference        string
	Paid             bool
	PaidAt           *time.Time
	ProviderResponse []byte
}

type Repository interface {
	Create(ctx context.Context, in CreatePaymentInput) (*domain.Payment, error)
	GetByReference(ctx context.Context, reference string) (*domain.Payment, error)
	// GetPaidByOrder returns the most recent paid payment for the order.
	GetPaidByOrder(ctx context.Context, orderID string) (*domain.Payment, error)
	// ApplyOutcome performs the guarded payment transition and the matching
	// order update in a single transaction. The bool result reports whether a
	// transition actually happened; duplicate or stale outcomes return the
	// current row with false and no mutation.
	ApplyOutcome(ctx context.Context, in ApplyOutcomeInput) (*domain.Payment, bool, error)
	// MarkRefunded moves a paid payment to refunded and flips the owning
	// order's payment_status in the same transaction. Safe to repeat.
	MarkRefunded(ctx context.Context, paymentID string, providerResponse []byte) (*domain.Payment, error)
}
