package importcsv

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"smartpantry/internal/importer"
	"smartpantry/internal/inventory"
)

type Handler struct {
	parser *importer.Parser
	invSvc *inventory.Service
}

func NewHandler(parser *importer.Parser, invSvc *inventory.Service) *Handler {
	return &Handler{parser: parser, invSvc: invSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importReceipt)
}

type importedItem struct {
	ID   uuid.UUID `json:"id"`
	UPC  string    `json:"upc"`
	Name string    `json:"name"`
}

type importResponse struct {
	Imported int            `json:"imported"`
	Items    []importedItem `json:"items"`
}

func (h *Handler) importReceipt(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.parser.Parse(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// The store field, when present, overrides per-row store values so a
	// whole receipt can be attributed to one shop.
	store := r.FormValue("store")

	resp := importResponse{Items: make([]importedItem, 0, len(params))}

	for _, p := range params {
		if store != "" {
			p.Store = store
		}

		item, err := h.invSvc.Add(r.Context(), p)
		if err != nil {
			if errors.Is(err, inventory.ErrInvalidPrice) || errors.Is(err, inventory.ErrInvalidQuantity) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			http.Error(w, "internal error", http.StatusInternalServerError)

			return
		}

		resp.Items = append(resp.Items, importedItem{ID: item.ID, UPC: item.UPC, Name: item.Name})
	}

	resp.Imported = len(resp.Items)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
