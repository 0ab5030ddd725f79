package location

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"smartpantry/internal/location"
)

type Handler struct {
	svc *location.Service
}

func NewHandler(svc *location.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.set)
	r.Get("/", h.get)
}

type locationDTO struct {
	Zip  string `json:"zip"`
	City string `json:"city"`
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	var req locationDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.Set(req.Zip, req.City); err != nil {
		if errors.Is(err, location.ErrMissingField) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	loc := h.svc.Get()

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(locationDTO{Zip: loc.Zip, City: loc.City}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
