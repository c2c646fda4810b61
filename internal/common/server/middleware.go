package server

import (
	"context"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/CarShareLink/CarShareLink/internal/common/apperror"
	"github.com/CarShareLink/CarShareLink/internal/common/auth"
	"github.com/CarShareLink/CarShareLink/internal/common/config"
	"github.com/CarShareLink/CarShareLink/internal/common/logger"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

// WriteError 边界层统一错误输出：apperror 类别映射为状态码，
// 响应体只带 message，不泄漏底层错误。
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	ae := apperror.From(err)
	render.Status(r, ae.StatusCode())
	render.JSON(w, r, map[string]string{"message": ae.Message})
}

// Recovery 防止 panic 直接把进程打崩，并记录栈信息。
func Recovery(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if log != nil {
						log.Errorf("panic in http %s %s err=%v stack=%s", r.Method, r.URL.Path, rec, string(debug.Stack()))
					}
					WriteError(w, r, apperror.NewInternal("internal error", nil))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// AccessLog 记录每个 HTTP 请求的状态码/耗时。
// 用 chi 的包装器捕获状态码，保留底层 Flusher/Hijacker 能力。
func AccessLog(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			cost := time.Since(start)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			if log != nil {
				fields := map[string]interface{}{
					"method": r.Method,
					"path":   r.URL.Path,
					"status": status,
					"cost":   cost.String(),
				}
				if status >= http.StatusInternalServerError {
					log.WithFields(fields).Warn("http request failed")
				} else {
					log.WithFields(fields).Info("http request ok")
				}
			}
		})
	}
}

// Tracing 基于 OpenTracing 的最小 HTTP server 中间件：
// - 从请求头提取上游 span context
// - 创建 server span 并注入 ctx，业务侧可用 opentracing.StartSpanFromContext
func Tracing(serviceName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tracer := opentracing.GlobalTracer()

			var parent opentracing.SpanContext
			if sc, err := tracer.Extract(opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(r.Header)); err == nil {
				parent = sc
			}

			operation := r.Method + " " + r.URL.Path
			var span opentracing.Span
			if parent != nil {
				span = tracer.StartSpan(operation, ext.RPCServerOption(parent))
			} else {
				span = tracer.StartSpan(operation)
			}
			defer span.Finish()

			ext.SpanKindRPCServer.Set(span)
			ext.Component.Set(span, "http")
			ext.HTTPMethod.Set(span, r.Method)
			ext.HTTPUrl.Set(span, r.URL.Path)
			if serviceName != "" {
				span.SetTag("service", serviceName)
			}

			ctx := opentracing.ContextWithSpan(r.Context(), span)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CarsCookie 每个响应种一个访问 cookie（沿用前端已有的约定）。
func CarsCookie() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.SetCookie(w, &http.Cookie{
				Name:  "cars_cookie",
				Value: "you visited the carsharing app",
				Path:  "/",
			})
			next.ServeHTTP(w, r)
		})
	}
}

type authContextKey struct{}

// AuthInfo 从 JWT 中解析出的最小用户信息（放入 ctx，供业务侧使用）。
type AuthInfo struct {
	Subject string   // 用户名
	Roles   []string // 角色列表
}

// AuthFromContext 从 ctx 中取出鉴权信息。
func AuthFromContext(ctx context.Context) (AuthInfo, bool) {
	v := ctx.Value(authContextKey{})
	if v == nil {
		return AuthInfo{}, false
	}
	ai, ok := v.(AuthInfo)
	return ai, ok
}

// JWTAuth 保护写接口的 JWT 中间件：
// - 读取 `Authorization: Bearer <token>`
// - 校验签名与标准字段，将解析结果写入 ctx
// - cfg.Enabled=false 时直接放行（仅限开发环境）
func JWTAuth(cfg config.AuthConfig, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}
			if strings.TrimSpace(cfg.JWTSecret) == "" {
				if log != nil {
					log.Warn("auth enabled but jwt_secret is empty")
				}
				WriteError(w, r, apperror.NewAuth("auth not configured"))
				return
			}

			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				WriteError(w, r, apperror.NewAuth("missing authorization"))
				return
			}

			tokenStr := raw
			if strings.HasPrefix(strings.ToLower(tokenStr), "bearer ") {
				tokenStr = strings.TrimSpace(tokenStr[len("bearer "):])
			}
			if tokenStr == "" {
				WriteError(w, r, apperror.NewAuth("invalid authorization"))
				return
			}

			claims, err := auth.ParseAccessToken(cfg, tokenStr)
			if err != nil {
				WriteError(w, r, apperror.NewAuth("invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), authContextKey{}, AuthInfo{
				Subject: claims.Subject,
				Roles:   claims.Roles,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
