package gateway

import "testing"

func TestVerifySignature(t *testing.T) {
	secret := "sk_test_secret"
	body := []byte(`{"event":"charge.success","data":{"reference":"R1"}}`)

	if !VerifySignature(secret, body, Sign(secret, body)) {
		t.Fatalf("expected matching signature to verify")
	}
}

func TestVerifySignatureRejectsTamperedBody(t *testing.T) {
	secret := "sk_test_secret"
	body := []byte(`{"event":"charge.success","data":{"reference":"R1"}}`)
	sig := Sign(secret, body)

	tampered := []byte(`{"event":"charge.success","data":{"reference":"R2"}}`)
	if VerifySignature(secret, tampered, sig) {
		t.Fatalf("expected tampered body to fail verification")
	}
}

func TestVerifySignatureRejectsEmptySignature(t *testing.T) {
	if VerifySignature("sk", []byte("body"), "") {
		t.Fatalf("expected empty signature to fail verification")
	}
}

func TestVerifySignatureRejectsWrongSecret(t *testing.T) {
	body := []byte(`{}`)
	if VerifySignature("sk_one", body, Sign("sk_two", body)) {
		t.Fatalf("expected signature from a different secret to fail")
	}
}
