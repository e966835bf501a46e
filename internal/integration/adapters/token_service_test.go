package adapters

import (
	"context"
	"testing"
	"time"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.GenerateAccessToken("user-123")
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	claims, err := svc.ValidateAccessToken(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error validating token: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("expected user ID user-123, got %q", claims.UserID)
	}
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.GenerateAccessToken("user-123")
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}

	if _, err := verifier.ValidateAccessToken(context.Background(), token); err == nil {
		t.Error("expected validation to fail for a token signed with another secret")
	}
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	svc := &tokenService{secret: []byte("test-secret"), expiry: -time.Hour}

	token, err := svc.GenerateAccessToken("user-123")
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}

	if _, err := svc.ValidateAccessToken(context.Background(), token); err == nil {
		t.Error("expected validation to fail for an expired token")
	}
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	if _, err := svc.ValidateAccessToken(context.Background(), "not.a.token"); err == nil {
		t.Error("expected validation to fail for a malformed token")
	}
}
