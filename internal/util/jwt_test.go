package util

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestJWTGenerateAndParse(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour)
	userID := uuid.New()

	token, expiresAt, err := manager.Generate(userID, "staff@example.com", "Staff")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("expected a future expiry, got %v", expiresAt)
	}

	claims, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user %s, got %s", userID, claims.UserID)
	}
	if claims.Email != "staff@example.com" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
}

func TestJWTParseRejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("secret", -time.Minute)
	token, _, err := manager.Generate(uuid.New(), "staff@example.com", "Staff")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if _, err := manager.Parse(token); err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
}

func TestJWTParseRejectsWrongSecret(t *testing.T) {
	token, _, err := NewJWTManager("secret-a", time.Hour).Generate(uuid.New(), "a@example.com", "")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if _, err := NewJWTManager("secret-b", time.Hour).Parse(token); err == nil {
		t.Fatal("expected error for wrong secret, got nil")
	}
}
