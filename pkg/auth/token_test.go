package auth

import (
	"testing"
	"time"

	"github.com/angelmondragon/pizzaria-backend/pkg/config"
	"github.com/google/uuid"
)

var testJWTCfg = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "pizzaria-test",
	ExpirationMinutes: 60,
}

func TestMintAndParseRoundTrip(t *testing.T) {
	userID := uuid.New()
	token, err := MintAccessToken(testJWTCfg, time.Now(), AccessTokenPayload{
		UserID: userID,
		Email:  "mario@example.com",
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseAccessToken(testJWTCfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("user id mismatch: %s", claims.UserID)
	}
	if claims.Email != "mario@example.com" {
		t.Fatalf("email mismatch: %s", claims.Email)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := MintAccessToken(testJWTCfg, time.Now().Add(-2*time.Hour), AccessTokenPayload{
		UserID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseAccessToken(testJWTCfg, token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := MintAccessToken(testJWTCfg, time.Now(), AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	other := testJWTCfg
	other.Secret = "different"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected signature mismatch to be rejected")
	}
}

func TestMintValidatesConfig(t *testing.T) {
	_, err := MintAccessToken(config.JWTConfig{}, time.Now(), AccessTokenPayload{UserID: uuid.New()})
	if err == nil {
		t.Fatal("expected error for missing secret")
	}

	_, err = MintAccessToken(testJWTCfg, time.Now(), AccessTokenPayload{})
	if err == nil {
		t.Fatal("expected error for nil user id")
	}
}
