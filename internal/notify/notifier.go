package notify

import (
	"context"
	"log"

	"storefront-checkout/internal/domain"
)

// Notifier is the external notification collaborator. Calls are best-effort:
// implementations must not fail the triggering operation.
type Notifier interface {
	OrderCreated(ctx context.Context, order *domain.Order)
	PaymentSucceeded(ctx context.Context, payment *domain.Payment)
	PaymentFailed(ctx context.Context, payment *domain.Payment)
}

// LogNotifier writes notifications to the service log. It stands in for the
// real push/email delivery system, which lives outside this service.
type LogNotifier struct {
	logger *log.Logger
}

func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) OrderCreated(_ context.Context, order *domain.Order) {
	n.logger.Printf("notify: order %s created for buyer %s, total %d %s", order.ID, order.BuyerID, order.TotalCents, order.Currency)
}

func (n *LogNotifier) PaymentSucceeded(_ context.Context, payment *domain.Payment) {
	n.logger.Printf("notify: payment %s (ref %s) succeeded for order %s", payment.ID, payment.TransactionReference, payment.OrderID)
}

func (n *LogNotifier) PaymentFailed(_ context.Context, payment *domain.Payment) {
	n.logger.Printf("notify: payment %s (ref %s) failed for order %s", payment.ID, payment.TransactionReference, payment.OrderID)
}
