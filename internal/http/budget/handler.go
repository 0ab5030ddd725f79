package budget

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"smartpantry/internal/budget"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.set)
	r.Get("/", h.get)
}

type setRequest struct {
	MonthlyBudget int64 `json:"monthly_budget"` // cents
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	var req setRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.SetCeiling(req.MonthlyBudget); err != nil {
		if errors.Is(err, budget.ErrInvalidBudget) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]int64{"monthly_budget": req.MonthlyBudget}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type summaryResponse struct {
	MonthlyBudget   int64   `json:"monthly_budget"`
	SpentThisMonth  int64   `json:"spent_this_month"`
	InventoryValue  int64   `json:"inventory_value"`
	RemainingBudget int64   `json:"remaining_budget"`
	CostPerDay      float64 `json:"cost_per_day"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Summary(r.Context(), time.Now().UTC())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := summaryResponse{
		MonthlyBudget:   sum.Ceiling,
		SpentThisMonth:  sum.SpentThisMonth,
		InventoryValue:  sum.InventoryValue,
		RemainingBudget: sum.RemainingBudget,
		CostPerDay:      sum.CostPerDay,
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
