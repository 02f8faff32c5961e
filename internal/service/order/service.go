package order

import (
	"context"
	"errors"
	"fmt"
	"log"

	"storefront-checkout/internal/domain"
	orderrepo "storefront-checkout/internal/repository/order"
	paymentrepo "storefront-checkout/internal/repository/payment"
)

type orderRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Cancel(ctx context.Context, id string) (*domain.Order, error)
}

type paymentRepo interface {
	GetPaidByOrder(ctx context.Context, orderID string) (*domain.Payment, error)
	MarkRefunded(ctx context.Context, paymentID string, providerResponse []byte) (*domain.Payment, error)
}

type refunder interface {
	Refund(ctx context.Context, reference string, amountCents int64) error
}

// Service handles order reads and operator-initiated cancellation with
// refund of already-paid orders.
type Service struct {
	orders   orderRepo
	payments paymentRepo
	gw       refunder
	logger   *log.Logger
}

func New(orders orderrepo.Repository, payments paymentrepo.Repository, gw refunder, logger *log.Logger) *Service {
	return &Service{orders: orders, payments: payments, gw: gw, logger: logger}
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// CancelResult reports the cancellation plus the refund outcome separately.
// RefundErr set means the order is cancelled but money is still held at the
// gateway and an operator must reconcile manually.
type CancelResult struct {
	Order     *domain.Order
	Refunded  bool
	RefundErr error
}

// Cancel cancels an order, refunding it first when it was already paid. The
// cancellation itself goes through even if the refund call fails; the refund
// is never retried automatically to avoid double refunds.
func (s *Service) Cancel(ctx context.Context, orderID string) (*CancelResult, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var result CancelResult
	if order.PaymentStatus == domain.PaymentStatusPaid {
		payment, err := s.payments.GetPaidByOrder(ctx, orderID)
		switch {
		case errors.Is(err, domain.ErrPaymentNotFound):
			// Paid without a gateway payment row (cash settlement); nothing
			// to refund.
		case err != nil:
			return nil, err
		default:
			if refundErr := s.gw.Refund(ctx, payment.TransactionReference, payment.AmountCents); refundErr != nil {
				s.logger.Printf("refund payment %s (ref %s): %v", payment.ID, payment.TransactionReference, refundErr)
				result.RefundErr = fmt.Errorf("%w: %v", domain.ErrRefundFailed, refundErr)
			} else {
				if _, err := s.payments.MarkRefunded(ctx, payment.ID, nil); err != nil {
					return nil, err
				}
				result.Refunded = true
			}
		}
	}

	cancelled, err := s.orders.Cancel(ctx, orderID)
	if err != nil {
		return nil, err
	}
	result.Order = cancelled
	return &result, nil
}
