package export

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"smartpantry/internal/export"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/purchases", h.purchases)
}

func (h *Handler) purchases(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="purchases.csv"`)

	if err := h.svc.WritePurchasesCSV(r.Context(), w); err != nil {
		// Headers may already be out; log instead of switching status.
		slog.Error("failed to write purchases csv", "error", err)
	}
}
