package inventory

import (
	"time"

	"github.com/google/uuid"

	"smartpantry/internal/inventory"
)

type itemResponse struct {
	ID          uuid.UUID          `json:"id"`
	UPC         string             `json:"upc"`
	Name        string             `json:"name"`
	Unit        string             `json:"unit,omitempty"`
	Quantity    int                `json:"quantity"`
	Remaining   int                `json:"remaining"`
	Price       int64              `json:"price"`
	Store       string             `json:"store,omitempty"`
	Category    string             `json:"category,omitempty"`
	Nutrition   map[string]float64 `json:"nutrition,omitempty"`
	PurchasedAt time.Time          `json:"purchased_at"`
	ExpiresAt   time.Time          `json:"expires_at"`
}

func toResponse(item *inventory.Item) itemResponse {
	return itemResponse{
		ID:          item.ID,
		UPC:         item.UPC,
		Name:        item.Name,
		Unit:        item.Unit,
		Quantity:    item.Quantity,
		Remaining:   item.Remaining,
		Price:       item.Price,
		Store:       item.Store,
		Category:    item.Category,
		Nutrition:   item.Nutrition,
		PurchasedAt: item.PurchasedAt,
		ExpiresAt:   item.ExpiresAt,
	}
}

func toResponseList(items []*inventory.Item) []itemResponse {
	resp := make([]itemResponse, len(items))
	for i, item := range items {
		resp[i] = toResponse(item)
	}

	return resp
}
