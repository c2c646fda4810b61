package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

// 非法 id 在进入业务层之前就被拦下，所以这里不需要真实服务。
func TestCarIDParsing(t *testing.T) {
	r := chi.NewRouter()
	NewCarHandler(r, nil, nil, nil, nil)

	for _, path := range []string{"/api/cars/abc", "/api/cars/-1", "/api/cars/abc/trips"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 for invalid id, got %d", path, rec.Code)
		}
	}
}
