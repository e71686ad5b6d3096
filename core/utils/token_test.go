package utils

import (
	"testing"
	"time"

	"github.com/Ecospace254/employee-sub000/core/config"

	"github.com/google/uuid"
)

func setTestSecret(t *testing.T) {
	t.Helper()
	config.Set(&config.Config{
		Auth: config.AuthConfig{JWTSecret: "test-secret"},
	})
	t.Cleanup(func() { config.Set(nil) })
}

func TestSessionTokenRoundTrip(t *testing.T) {
	setTestSecret(t)

	userID := uuid.New()
	token, err := GenerateSessionToken(userID, "newhire@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}

	claims, err := ValidateAndParseToken(token)
	if err != nil {
		t.Fatalf("ValidateAndParseToken: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("user id = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "newhire@example.com" {
		t.Errorf("email = %s", claims.Email)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		t.Error("expected a future expiry")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	setTestSecret(t)

	token, err := GenerateSessionToken(uuid.New(), "x@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}

	if _, err := ValidateAndParseToken(token); err == nil {
		t.Fatal("expected an expired token to be rejected")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	setTestSecret(t)

	token, err := GenerateSessionToken(uuid.New(), "x@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}

	if _, err := ValidateAndParseToken(token + "x"); err == nil {
		t.Fatal("expected a tampered token to be rejected")
	}
}

func TestTokenRequiresConfiguredSecret(t *testing.T) {
	config.Set(nil)

	if _, err := GenerateSessionToken(uuid.New(), "x@example.com", time.Hour); err == nil {
		t.Fatal("expected an error without a configured secret")
	}
}
