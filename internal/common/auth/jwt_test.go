package auth

import (
	"testing"
	"time"

	"github.com/CarShareLink/CarShareLink/internal/common/config"
)

func TestGenerateAndParseAccessToken(t *testing.T) {
	cfg := config.AuthConfig{
		Enabled:   true,
		JWTSecret: "test-secret",
		Issuer:    "carsharelink",
		Audience:  "carsharelink",
	}

	token, exp, err := GenerateAccessToken(cfg, "alice", []string{"user"}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if exp.Before(time.Now()) {
		t.Fatalf("expected exp in future")
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("subject mismatch: %s", claims.Subject)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "user" {
		t.Fatalf("roles mismatch: %#v", claims.Roles)
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	cfg := config.AuthConfig{JWTSecret: "secret-a", Issuer: "carsharelink"}
	token, _, err := GenerateAccessToken(cfg, "alice", nil, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	other := config.AuthConfig{JWTSecret: "secret-b", Issuer: "carsharelink"}
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatalf("expected parse failure with wrong secret")
	}
}

func TestParseAccessTokenRejectsWrongIssuer(t *testing.T) {
	cfg := config.AuthConfig{JWTSecret: "test-secret", Issuer: "someone-else"}
	token, _, err := GenerateAccessToken(cfg, "alice", nil, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	cfg.Issuer = "carsharelink"
	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatalf("expected parse failure with wrong issuer")
	}
}
