package util

import (
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := "0123456789abcdef0123456789abcdef"

	token, err := GenerateJWT("ゆき", secret, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseJWT(token, secret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "ゆき" {
		t.Errorf("user id = %q", claims.UserID)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("u", "secret-one-secret-one-secret-one", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseJWT(token, "secret-two-secret-two-secret-two"); err == nil {
		t.Error("token signed with a different secret should not parse")
	}
}

func TestJWTExpired(t *testing.T) {
	token, err := GenerateJWT("u", "0123456789abcdef0123456789abcdef", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseJWT(token, "0123456789abcdef0123456789abcdef"); err == nil {
		t.Error("expired token should not parse")
	}
}
