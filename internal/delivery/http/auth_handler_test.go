package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/CarShareLink/CarShareLink/internal/common/config"
	"github.com/CarShareLink/CarShareLink/internal/user"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type memUserStore struct {
	byName map[string]*user.User
}

func (m *memUserStore) Create(_ context.Context, u *user.User) error {
	u.ID = uint(len(m.byName) + 1)
	cp := *u
	m.byName[u.Username] = &cp
	return nil
}

func (m *memUserStore) Save(_ context.Context, u *user.User) error {
	cp := *u
	m.byName[u.Username] = &cp
	return nil
}

func (m *memUserStore) FindByUsername(_ context.Context, username string) (*user.User, error) {
	u, ok := m.byName[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserStore) FindByID(_ context.Context, id uint) (*user.User, error) {
	for _, u := range m.byName {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func newAuthRouter(t *testing.T) *chi.Mux {
	t.Helper()
	users := user.NewService(&memUserStore{byName: map[string]*user.User{}}, user.BcryptHasher{Cost: bcrypt.MinCost})
	if _, err := users.Register(context.Background(), "alice", "s3cret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	cfg := config.AuthConfig{
		Enabled:         true,
		JWTSecret:       "test-secret",
		Issuer:          "carsharelink",
		Audience:        "carsharelink",
		TokenTTLMinutes: 60,
	}

	r := chi.NewRouter()
	NewAuthHandler(r, users, cfg)
	return r
}

func postForm(t *testing.T, r http.Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestTokenEndpoint(t *testing.T) {
	r := newAuthRouter(t)

	rec := postForm(t, r, url.Values{"username": {"alice"}, "password": {"s3cret"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp tokenResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.AccessToken == "" || resp.TokenType != "bearer" {
		t.Fatalf("unexpected token response: %+v", resp)
	}
}

func TestTokenEndpointBadCredentials(t *testing.T) {
	r := newAuthRouter(t)

	unknown := postForm(t, r, url.Values{"username": {"nobody"}, "password": {"s3cret"}})
	wrongPw := postForm(t, r, url.Values{"username": {"alice"}, "password": {"wrong"}})

	if unknown.Code != http.StatusUnauthorized || wrongPw.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", unknown.Code, wrongPw.Code)
	}

	b1, _ := io.ReadAll(unknown.Body)
	b2, _ := io.ReadAll(wrongPw.Body)
	if string(b1) != string(b2) {
		t.Fatalf("unknown-user and wrong-password responses must be identical: %q vs %q", b1, b2)
	}
}

func TestTokenEndpointMissingFields(t *testing.T) {
	r := newAuthRouter(t)

	rec := postForm(t, r, url.Values{"username": {"alice"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %d", rec.Code)
	}
}
