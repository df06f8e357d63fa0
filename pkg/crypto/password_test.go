package crypto

import (
	"bytes"
	"testing"
)

func TestHashAndVerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if !VerifyPassword(hash, "correct horse battery") {
		t.Fatalf("expected matching password to verify")
	}
	if VerifyPassword(hash, "wrong horse battery") {
		t.Fatalf("expected mismatched password to fail verification")
	}
}

func TestHashIsSaltedPerCall(t *testing.T) {
	first, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	second, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if bytes.Equal(first, second) {
		t.Fatalf("expected distinct digests for the same plaintext")
	}
	if !VerifyPassword(first, "hunter22") || !VerifyPassword(second, "hunter22") {
		t.Fatalf("expected both digests to verify against the plaintext")
	}
}

func TestVerifyMalformedHashReturnsFalse(t *testing.T) {
	if VerifyPassword([]byte("not-a-bcrypt-digest"), "anything") {
		t.Fatalf("expected malformed digest to verify as false")
	}
	if VerifyPassword(nil, "anything") {
		t.Fatalf("expected nil digest to verify as false")
	}
}
