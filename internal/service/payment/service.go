package payment

import (
	"context"
	"fmt"
	"log"

	"storefront-checkout/internal/domain"
	"storefront-checkout/internal/gateway"
	"storefront-checkout/internal/notify"
	orderrepo "storefront-checkout/internal/repository/order"
	paymentrepo "storefront-checkout/internal/repository/payment"
	"github.com/google/uuid"
)

type paymentRepo interface {
	Create(ctx context.Context, in paymentrepo.CreatePaymentInput) (*domain.Payment, error)
	ApplyOutcome(ctx context.Context, in paymentrepo.ApplyOutcomeInput) (*domain.Payment, bool, error)
}

type orderRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	MarkCashPaid(ctx context.Context, id string) (*domain.Order, error)
}

type gatewayClient interface {
	Initialize(ctx context.Context, in gateway.InitializeInput) (*gateway.InitializeResult, error)
	Verify(ctx context.Context, reference string) (gateway.Outcome, error)
}

// Service owns payment initiation, reconciliation of gateway outcomes and
// manual settlement of cash orders. Webhook delivery and verification polls
// both funnel into the same reconcile path.
type Service struct {
	payments      paymentRepo
	orders        orderRepo
	gw            gatewayClient
	notifier      notify.Notifier
	webhookSecret string
	logger        *log.Logger
}

func New(payments paymentrepo.Repository, orders orderrepo.Repository, gw gatewayClient, notifier notify.Notifier, webhookSecret string, logger *log.Logger) *Service {
	return &Service{
		payments:      payments,
		orders:        orders,
		gw:            gw,
		notifier:      notifier,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

type InitiateInput struct {
	OrderID       string `json:"orderId"`
	PaymentMethod string `json:"paymentMethod"`
	AmountCents   int64  `json:"amountCents"`
}

type InitiateResult struct {
	PaymentID            string `json:"paymentId"`
	PaymentLink          string `json:"paymentLink"`
	TransactionReference string `json:"transactionReference"`
}

// Initiate opens a payment attempt with the gateway for a pending order. A
// gateway failure leaves the local payment row pending with its reference
// recorded; the caller may simply initiate again.
func (s *Service) Initiate(ctx context.Context, in InitiateInput) (*InitiateResult, error) {
	if !domain.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.NewValidationError("paymentMethod", "must be one of cash, mobile_money, bank_transfer")
	}
	if in.PaymentMethod == domain.MethodCash {
		// Cash settles manually, never through the gateway.
		return nil, domain.ErrUnsupportedMethod
	}

	order, err := s.orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderPending || order.PaymentStatus == domain.PaymentStatusPaid {
		return nil, domain.ErrOrderNotPayable
	}
	if in.AmountCents != order.TotalCents {
		return nil, domain.NewValidationError("amountCents", "does not match order total")
	}

	reference := uuid.NewString()
	payment, err := s.payments.Create(ctx, paymentrepo.CreatePaymentInput{
		PaymentID:            uuid.NewString(),
		OrderID:              order.ID,
		BuyerID:              order.BuyerID,
		AmountCents:          in.AmountCents,
		Currency:             order.Currency,
		PaymentMethod:        in.PaymentMethod,
		TransactionReference: reference,
	})
	if err != nil {
		return nil, err
	}

	res, err := s.gw.Initialize(ctx, gateway.InitializeInput{
		Reference:   reference,
		AmountCents: in.AmountCents,
		Currency:    order.Currency,
		Email:       order.Email,
		OrderID:     order.ID,
		PaymentID:   payment.ID,
	})
	if err != nil {
		s.logger.Printf("initiate payment %s for order %s: %v", payment.ID, order.ID, err)
		return nil, fmt.Errorf("initialize transaction: %w", err)
	}

	return &InitiateResult{
		PaymentID:            payment.ID,
		PaymentLink:          res.AuthorizationURL,
		TransactionReference: reference,
	}, nil
}

// ReconcileResult reports the state after applying a gateway outcome. Applied
// is false for duplicate or stale deliveries, which are successful no-ops.
type ReconcileResult struct {
	Payment *domain.Payment `json:"payment"`
	Order   *domain.Order   `json:"order"`
	Applied bool            `json:"-"`
}

// HandleWebhook verifies the signature over the exact raw body and reconciles
// the reported outcome. Callers must respond non-2xx on error so the provider
// redelivers.
func (s *Service) HandleWebhook(ctx context.Context, body []byte, signature string) (*ReconcileResult, error) {
	if !gateway.VerifySignature(s.webhookSecret, body, signature) {
		s.logger.Printf("webhook rejected: bad signature")
		return nil, domain.ErrInvalidSignature
	}
	outcome, err := gateway.ParseWebhook(body)
	if err != nil {
		return nil, err
	}
	return s.reconcile(ctx, outcome)
}

// VerifyByReference polls the gateway for a reference and reconciles the
// result, for when a webhook has not arrived yet.
func (s *Service) VerifyByReference(ctx context.Context, reference string) (*ReconcileResult, error) {
	outcome, err := s.gw.Verify(ctx, reference)
	if err != nil {
		return nil, err
	}
	return s.reconcile(ctx, outcome)
}

// reconcile is the single decision procedure shared by both entry points. The
// repository applies the transition conditionally, so concurrent deliveries
// for the same reference cannot double-apply it; notifications fire only when
// a transition actually happened.
func (s *Service) reconcile(ctx context.Context, outcome gateway.Outcome) (*ReconcileResult, error) {
	payment, applied, err := s.payments.ApplyOutcome(ctx, paymentrepo.ApplyOutcomeInput{
		Reference:        outcome.Reference,
		Paid:             outcome.Succeeded,
		PaidAt:           outcome.PaidAt,
		ProviderResponse: outcome.Raw,
	})
	if err != nil {
		return nil, err
	}

	if applied {
		if payment.Status == domain.PayPaid {
			s.notifier.PaymentSucceeded(ctx, payment)
		} else {
			s.notifier.PaymentFailed(ctx, payment)
		}
	}

	order, err := s.orders.GetByID(ctx, payment.OrderID)
	if err != nil {
		return nil, err
	}
	return &ReconcileResult{Payment: payment, Order: order, Applied: applied}, nil
}

// MarkCashPaid settles a cash-on-delivery order directly. Gateway-backed
// methods must go through reconciliation and are rejected here.
func (s *Service) MarkCashPaid(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentMethod != domain.MethodCash {
		return nil, domain.ErrUnsupportedMethod
	}
	return s.orders.MarkCashPaid(ctx, orderID)
}
