package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CarShareLink/CarShareLink/internal/common/auth"
	"github.com/CarShareLink/CarShareLink/internal/common/config"
)

func TestJWTAuthMiddleware(t *testing.T) {
	cfg := config.AuthConfig{
		Enabled:   true,
		JWTSecret: "test-secret",
		Issuer:    "carsharelink",
		Audience:  "carsharelink",
	}

	token, _, err := auth.GenerateAccessToken(cfg, "alice", []string{"user"}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	var gotSubject string
	handler := JWTAuth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ai, ok := AuthFromContext(r.Context())
		if !ok {
			t.Fatalf("missing auth info in ctx")
		}
		gotSubject = ai.Subject
		w.WriteHeader(http.StatusOK)
	}))

	// 无 token 应拒绝
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/cars", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	// 非法 token 应拒绝
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cars", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rec.Code)
	}

	// 合法 token 放行并注入 AuthInfo
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/cars", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", rec.Code)
	}
	if gotSubject != "alice" {
		t.Fatalf("subject mismatch: %s", gotSubject)
	}
}

func TestJWTAuthMiddlewareDisabled(t *testing.T) {
	cfg := config.AuthConfig{Enabled: false}
	handler := JWTAuth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/cars", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through when auth disabled, got %d", rec.Code)
	}
}
