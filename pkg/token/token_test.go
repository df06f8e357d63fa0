package token

import (
	"errors"
	"strings"
	"testing"
)

func TestIssueParseRoundTrip(t *testing.T) {
	signed, err := Issue("account-42", "server-secret")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	subject, err := Parse(signed, "server-secret")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if subject != "account-42" {
		t.Fatalf("unexpected subject: %q", subject)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signed, err := Issue("account-42", "server-secret")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := Parse(signed, "other-secret"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseRejectsCorruptedToken(t *testing.T) {
	signed, err := Issue("account-42", "server-secret")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	corrupted := signed + "A"
	if _, err := Parse(corrupted, "server-secret"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered signature, got %v", err)
	}
	truncated := signed[:strings.LastIndex(signed, ".")]
	if _, err := Parse(truncated, "server-secret"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for structural corruption, got %v", err)
	}
	if _, err := Parse("", "server-secret"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for empty token, got %v", err)
	}
}
