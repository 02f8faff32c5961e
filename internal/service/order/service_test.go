package order

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"storefront-checkout/internal/domain"
)

type stubOrderRepo struct {
	order     *domain.Order
	cancelErr error
	cancelled int
}

func (s *stubOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	if s.order == nil || s.order.ID != id {
		return nil, domain.ErrNotFound
	}
	return s.order, nil
}

func (s *stubOrderRepo) Cancel(_ context.Context, id string) (*domain.Order, error) {
	if s.cancelErr != nil {
		return nil, s.cancelErr
	}
	if s.order == nil || s.order.ID != id {
		return nil, domain.ErrNotFound
	}
	s.cancelled++
	s.order.Status = domain.OrderCancelled
	return s.order, nil
}

type stubPaymentRepo struct {
	paid         *domain.Payment
	refundedIDs  []string
	refundedResp []byte
}

func (s *stubPaymentRepo) GetPaidByOrder(_ context.Context, orderID string) (*domain.Payment, error) {
	if s.paid == nil || s.paid.OrderID != orderID {
		return nil, domain.ErrPaymentNotFound
	}
	return s.paid, nil
}

func (s *stubPaymentRepo) MarkRefunded(_ context.Context, paymentID string, providerResponse []byte) (*domain.Payment, error) {
	s.refundedIDs = append(s.refundedIDs, paymentID)
	s.refundedResp = providerResponse
	if s.paid != nil && s.paid.ID == paymentID {
		s.paid.Status = domain.PayRefunded
		return s.paid, nil
	}
	return nil, domain.ErrPaymentNotFound
}

type stubRefunder struct {
	err        error
	calls      int
	references []string
	amounts    []int64
}

func (s *stubRefunder) Refund(_ context.Context, reference string, amountCents int64) error {
	s.calls++
	s.references = append(s.references, reference)
	s.amounts = append(s.amounts, amountCents)
	return s.err
}

func newService(orders *stubOrderRepo, payments *stubPaymentRepo, gw *stubRefunder) *Service {
	return &Service{
		orders:   orders,
		payments: payments,
		gw:       gw,
		logger:   log.New(io.Discard, "", 0),
	}
}

func paidOrder() *domain.Order {
	return &domain.Order{
		ID:            "o1",
		BuyerID:       "buyer",
		TotalCents:    2500,
		Currency:      "GHS",
		PaymentMethod: domain.MethodMobileMoney,
		Status:        domain.OrderProcessing,
		PaymentStatus: domain.PaymentStatusPaid,
	}
}

func paidPayment() *domain.Payment {
	return &domain.Payment{
		ID:                   "p1",
		OrderID:              "o1",
		AmountCents:          2500,
		Currency:             "GHS",
		Status:               domain.PayPaid,
		TransactionReference: "R1",
	}
}

func TestCancelPaidOrderRefunds(t *testing.T) {
	orders := &stubOrderRepo{order: paidOrder()}
	payments := &stubPaymentRepo{paid: paidPayment()}
	gw := &stubRefunder{}
	svc := newService(orders, payments, gw)

	res, err := svc.Cancel(context.Background(), "o1")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if !res.Refunded || res.RefundErr != nil {
		t.Fatalf("expected refund to succeed, got %+v", res)
	}
	if res.Order.Status != domain.OrderCancelled {
		t.Fatalf("order not cancelled: %s", res.Order.Status)
	}
	if gw.calls != 1 || gw.references[0] != "R1" || gw.amounts[0] != 2500 {
		t.Fatalf("unexpected refund call: %+v", gw)
	}
	if len(payments.refundedIDs) != 1 || payments.refundedIDs[0] != "p1" {
		t.Fatalf("payment not marked refunded: %+v", payments.refundedIDs)
	}
}

func TestCancelRefundFailureStillCancels(t *testing.T) {
	orders := &stubOrderRepo{order: paidOrder()}
	payments := &stubPaymentRepo{paid: paidPayment()}
	gw := &stubRefunder{err: errors.New("gateway timeout")}
	svc := newService(orders, payments, gw)

	res, err := svc.Cancel(context.Background(), "o1")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if res.Refunded {
		t.Fatalf("refund should not be reported as succeeded")
	}
	if !errors.Is(res.RefundErr, domain.ErrRefundFailed) {
		t.Fatalf("expected refund failure marker, got %v", res.RefundErr)
	}
	if res.Order.Status != domain.OrderCancelled {
		t.Fatalf("cancellation must go through despite refund failure")
	}
	if len(payments.refundedIDs) != 0 {
		t.Fatalf("payment must not be marked refunded after a failed refund")
	}
}

func TestCancelUnpaidOrderSkipsRefund(t *testing.T) {
	order := paidOrder()
	order.Status = domain.OrderPending
	order.PaymentStatus = domain.PaymentStatusUnpaid
	orders := &stubOrderRepo{order: order}
	gw := &stubRefunder{}
	svc := newService(orders, &stubPaymentRepo{}, gw)

	res, err := svc.Cancel(context.Background(), "o1")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if res.Refunded || res.RefundErr != nil {
		t.Fatalf("no refund expected for unpaid order, got %+v", res)
	}
	if gw.calls != 0 {
		t.Fatalf("gateway must not be called")
	}
	if res.Order.Status != domain.OrderCancelled {
		t.Fatalf("order not cancelled: %s", res.Order.Status)
	}
}

func TestCancelCashPaidOrderHasNothingToRefund(t *testing.T) {
	order := paidOrder()
	order.PaymentMethod = domain.MethodCash
	orders := &stubOrderRepo{order: order}
	gw := &stubRefunder{}
	// No gateway payment row exists for cash settlements.
	svc := newService(orders, &stubPaymentRepo{}, gw)

	res, err := svc.Cancel(context.Background(), "o1")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if res.Refunded || res.RefundErr != nil {
		t.Fatalf("cash order must cancel without refund, got %+v", res)
	}
	if gw.calls != 0 {
		t.Fatalf("gateway must not be called")
	}
}

func TestCancelUnknownOrder(t *testing.T) {
	svc := newService(&stubOrderRepo{}, &stubPaymentRepo{}, &stubRefunder{})
	_, err := svc.Cancel(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGet(t *testing.T) {
	orders := &stubOrderRepo{order: paidOrder()}
	svc := newService(orders, &stubPaymentRepo{}, &stubRefunder{})

	got, err := svc.Get(context.Background(), "o1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != "o1" {
		t.Fatalf("unexpected order %+v", got)
	}

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
