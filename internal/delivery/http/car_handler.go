package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/CarShareLink/CarShareLink/internal/booking"
	"github.com/CarShareLink/CarShareLink/internal/car"
	"github.com/CarShareLink/CarShareLink/internal/common/apperror"
	"github.com/CarShareLink/CarShareLink/internal/common/server"
	"github.com/CarShareLink/CarShareLink/internal/trip"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// CarHandler 车队与行程的 REST 接口。读接口公开，写接口走 JWT 鉴权。
type CarHandler struct {
	fleet   *car.Service
	booking *booking.Service
	trips   *trip.Ledger
}

// NewCarHandler 在 /api/cars 下注册路由。requireAuth 包住所有写操作。
func NewCarHandler(r chi.Router, fleet *car.Service, bookingSvc *booking.Service, trips *trip.Ledger, requireAuth func(http.Handler) http.Handler) {
	h := &CarHandler{fleet: fleet, booking: bookingSvc, trips: trips}

	r.Route("/api/cars", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Get("/{id}/trips", h.ListTrips)

		r.Group(func(r chi.Router) {
			if requireAuth != nil {
				r.Use(requireAuth)
			}
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
			r.Post("/{id}/trips", h.BookTrip)
		})
	})
}

func carID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperror.NewValidation(fmt.Sprintf("invalid car id %q", raw), err)
	}
	return uint(id), nil
}

func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	f := car.ListFilter{Size: r.URL.Query().Get("size")}
	if raw := r.URL.Query().Get("doors"); raw != "" {
		doors, err := strconv.Atoi(raw)
		if err != nil {
			server.WriteError(w, r, apperror.NewValidation(fmt.Sprintf("invalid doors %q", raw), err))
			return
		}
		f.MinDoors = doors
	}

	cars, err := h.fleet.List(r.Context(), f)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	render.JSON(w, r, car.ToOutputs(cars))
}

func (h *CarHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := carID(r)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	c, err := h.fleet.Get(r.Context(), id)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	render.JSON(w, r, car.ToOutput(c))
}

func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in car.CarInput
	if err := render.DecodeJSON(r.Body, &in); err != nil {
		server.WriteError(w, r, apperror.NewValidation("invalid request body", err))
		return
	}
	c, err := h.fleet.Create(r.Context(), in)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, car.ToOutput(c))
}

func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := carID(r)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	var in car.CarInput
	if err := render.DecodeJSON(r.Body, &in); err != nil {
		server.WriteError(w, r, apperror.NewValidation("invalid request body", err))
		return
	}
	c, err := h.fleet.Update(r.Context(), id, in)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	render.JSON(w, r, car.ToOutput(c))
}

func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := carID(r)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	if err := h.fleet.Delete(r.Context(), id); err != nil {
		server.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CarHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	id, err := carID(r)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	trips, err := h.trips.ListFor(r.Context(), id)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	render.JSON(w, r, trip.ToOutputs(trips))
}

func (h *CarHandler) BookTrip(w http.ResponseWriter, r *http.Request) {
	id, err := carID(r)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	var in trip.TripInput
	if err := render.DecodeJSON(r.Body, &in); err != nil {
		server.WriteError(w, r, apperror.NewValidation("invalid request body", err))
		return
	}
	tr, err := h.booking.BookTrip(r.Context(), id, in)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, trip.ToOutput(tr))
}
