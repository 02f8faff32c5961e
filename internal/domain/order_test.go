package domain

import "testing"

func TestOrderTotal(t *testing.T) {
	items := []CartItem{
		{ProductID: "p1", Quantity: 2, UnitPriceCents: 1000},
	}
	if got := OrderTotal(items, 500); got != 2500 {
		t.Fatalf("expected total 2500, got %d", got)
	}
}

func TestOrderTotalEmptyCartIsFeeOnly(t *testing.T) {
	if got := OrderTotal(nil, 300); got != 300 {
		t.Fatalf("expected 300, got %d", got)
	}
}

func TestOrderTotalMultipleLines(t *testing.T) {
	items := []CartItem{
		{ProductID: "p1", Quantity: 3, UnitPriceCents: 4500},
		{ProductID: "p2", Quantity: 1, UnitPriceCents: 2500},
	}
	if got := OrderTotal(items, 0); got != 16000 {
		t.Fatalf("expected 16000, got %d", got)
	}
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []string{MethodCash, MethodMobileMoney, MethodBankTransfer} {
		if !ValidPaymentMethod(m) {
			t.Fatalf("expected %q to be valid", m)
		}
	}
	for _, m := range []string{"", "card", "CASH"} {
		if ValidPaymentMethod(m) {
			t.Fatalf("expected %q to be invalid", m)
		}
	}
}
