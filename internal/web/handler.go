package web

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/CarShareLink/CarShareLink/internal/car"
	"github.com/CarShareLink/CarShareLink/internal/common/apperror"
	"github.com/CarShareLink/CarShareLink/internal/common/server"
	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler 简单的服务端渲染页面：首页 + 车辆检索。
type Handler struct {
	fleet *car.Service
	tmpl  *template.Template
}

func NewHandler(r chi.Router, fleet *car.Service) {
	h := &Handler{
		fleet: fleet,
		tmpl:  template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
	r.Get("/", h.Home)
	r.Post("/search", h.Search)
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "home.html", nil); err != nil {
		server.WriteError(w, r, apperror.NewInternal("failed to render page", err))
	}
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		server.WriteError(w, r, apperror.NewValidation("invalid form body", err))
		return
	}

	f := car.ListFilter{Size: r.PostFormValue("size")}
	if raw := r.PostFormValue("doors"); raw != "" {
		doors, err := strconv.Atoi(raw)
		if err != nil {
			server.WriteError(w, r, apperror.NewValidation("invalid doors value", err))
			return
		}
		f.MinDoors = doors
	}

	cars, err := h.fleet.List(r.Context(), f)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		Filter car.ListFilter
		Cars   []car.CarOutput
	}{Filter: f, Cars: car.ToOutputs(cars)}
	if err := h.tmpl.ExecuteTemplate(w, "search_results.html", data); err != nil {
		server.WriteError(w, r, apperror.NewInternal("failed to render page", err))
	}
}
