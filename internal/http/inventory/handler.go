package inventory

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"smartpantry/internal/inventory"
)

type Handler struct {
	svc *inventory.Service
}

func NewHandler(svc *inventory.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.add)
	r.Get("/", h.list)
	r.Delete("/{upc}", h.remove)
	r.Delete("/", h.clear)
}

type addRequest struct {
	UPC      string `json:"upc"`
	Name     string `json:"name"`
	Price    int64  `json:"price"` // cents
	Store    string `json:"store"`
	Quantity int    `json:"quantity"`
	Category string `json:"category"`
	Unit     string `json:"unit"`
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := h.svc.Add(r.Context(), inventory.AddParams{
		UPC:      req.UPC,
		Name:     req.Name,
		Price:    req.Price,
		Store:    req.Store,
		Quantity: req.Quantity,
		Category: req.Category,
		Unit:     req.Unit,
	})
	if err != nil {
		if errors.Is(err, inventory.ErrInvalidPrice) || errors.Is(err, inventory.ErrInvalidQuantity) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(item)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(items)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type removeResponse struct {
	Removed int `json:"removed"`
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	upc := chi.URLParam(r, "upc")

	quantity := 1

	if q := r.URL.Query().Get("quantity"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			http.Error(w, "invalid quantity", http.StatusBadRequest)
			return
		}

		quantity = n
	}

	removed, err := h.svc.Remove(r.Context(), upc, quantity)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			http.Error(w, "no such item to remove", http.StatusNotFound)
			return
		}

		if errors.Is(err, inventory.ErrInvalidQuantity) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(removeResponse{Removed: removed}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Clear(r.Context()); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]bool{"cleared": true}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
