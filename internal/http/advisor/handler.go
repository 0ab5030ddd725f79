package advisor

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"smartpantry/internal/advisor"
)

type Handler struct {
	svc *advisor.Service
}

func NewHandler(svc *advisor.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/mealplan", h.mealPlan)
	r.Get("/whatcanieat", h.whatCanIEat)
	r.Get("/tips", h.wasteTips)
	r.Get("/spending", h.spending)
	r.Get("/prices", h.prices)
	r.Get("/costpermeal", h.costPerMeal)
}

type mealPlanRequest struct {
	Days    int `json:"days"`
	Members int `json:"members"`
}

func (h *Handler) mealPlan(w http.ResponseWriter, r *http.Request) {
	var req mealPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	plan, err := h.svc.MealPlan(r.Context(), req.Days, req.Members)
	if err != nil {
		if errors.Is(err, advisor.ErrInvalidDays) || errors.Is(err, advisor.ErrInvalidMembers) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeText(w, "meal_plan", plan)
}

func (h *Handler) whatCanIEat(w http.ResponseWriter, r *http.Request) {
	options, err := h.svc.WhatCanIEat(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeText(w, "options", options)
}

func (h *Handler) wasteTips(w http.ResponseWriter, r *http.Request) {
	tips, err := h.svc.WasteTips(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeText(w, "tips", tips)
}

func (h *Handler) spending(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.svc.SpendingAnalysis(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeText(w, "analysis", analysis)
}

func (h *Handler) prices(w http.ResponseWriter, r *http.Request) {
	comparison, err := h.svc.PriceComparison(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeText(w, "comparison", comparison)
}

type costPerMealResponse struct {
	CostPerMeal    float64 `json:"cost_per_meal"`
	EstimatedMeals int     `json:"estimated_meals"`
	TotalValue     int64   `json:"total_value"`
	Text           string  `json:"text"`
}

func (h *Handler) costPerMeal(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.CostPerMeal(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := costPerMealResponse{
		CostPerMeal:    result.PerMeal,
		EstimatedMeals: result.EstimatedMeals,
		TotalValue:     result.TotalValue,
		Text:           result.Text,
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeText(w http.ResponseWriter, key, text string) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]string{key: text}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
