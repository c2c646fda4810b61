package http

import (
	"net/http"
	"time"

	"github.com/CarShareLink/CarShareLink/internal/common/apperror"
	"github.com/CarShareLink/CarShareLink/internal/common/auth"
	"github.com/CarShareLink/CarShareLink/internal/common/config"
	"github.com/CarShareLink/CarShareLink/internal/common/server"
	"github.com/CarShareLink/CarShareLink/internal/user"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// AuthHandler 登录换取 access token。入参是表单（username/password），
// 用户不存在与密码错误返回完全相同的 401。
type AuthHandler struct {
	users *user.Service
	cfg   config.AuthConfig
}

func NewAuthHandler(r chi.Router, users *user.Service, cfg config.AuthConfig) {
	h := &AuthHandler{users: users, cfg: cfg}
	r.Post("/api/auth/token", h.Token)
}

type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		server.WriteError(w, r, apperror.NewValidation("invalid form body", err))
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		server.WriteError(w, r, apperror.NewValidation("username and password required", nil))
		return
	}

	u, err := h.users.Authenticate(r.Context(), username, password)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}

	ttl := time.Duration(h.cfg.TokenTTLMinutes) * time.Minute
	token, expiresAt, err := auth.GenerateAccessToken(h.cfg, u.Username, []string{"user"}, ttl)
	if err != nil {
		server.WriteError(w, r, apperror.NewInternal("failed to issue token", err))
		return
	}

	render.JSON(w, r, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	})
}
