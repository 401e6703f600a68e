package payment

import (
	"context"
	"testing"
)

func TestVerifySignature(t *testing.T) {
	sig := Sign("gw_order_1", "gw_pay_1", "secret")
	if !VerifySignature("gw_order_1", "gw_pay_1", sig, "secret") {
		t.Fatal("expected valid signature to verify")
	}
	if VerifySignature("gw_order_1", "gw_pay_2", sig, "secret") {
		t.Fatal("signature must bind the payment id")
	}
	if VerifySignature("gw_order_1", "gw_pay_1", sig, "other-secret") {
		t.Fatal("signature must bind the key secret")
	}
	if VerifySignature("gw_order_1", "gw_pay_1", "forged", "secret") {
		t.Fatal("forged signature must fail")
	}
}

func TestMockGateway(t *testing.T) {
	g := NewMockGateway()

	paid, _, err := g.PaymentStatus(context.Background(), "gw_order_1")
	if err != nil || paid {
		t.Fatalf("expected unpaid fresh order, got paid=%v err=%v", paid, err)
	}

	paymentID := g.CompletePayment("gw_order_1")
	paid, gotID, err := g.PaymentStatus(context.Background(), "gw_order_1")
	if err != nil || !paid {
		t.Fatalf("expected paid after completion, got paid=%v err=%v", paid, err)
	}
	if gotID != paymentID {
		t.Fatalf("expected payment id %s, got %s", paymentID, gotID)
	}
}
