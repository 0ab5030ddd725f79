package inventory

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a remove targets a UPC with no units left.
	ErrNotFound = errors.New("no such item in inventory")

	ErrInvalidPrice    = errors.New("price must be greater than zero")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// Item represents one purchased lot of a product sitting in the pantry.
type Item struct {
	ID          uuid.UUID
	UPC         string
	Name        string
	Unit        string
	Quantity    int   // units purchased in this lot
	Remaining   int   // units still in the pantry, never above Quantity
	Price       int64 // unit price in cents
	Store       string
	Category    string
	Nutrition   map[string]float64
	PurchasedAt time.Time
	ExpiresAt   time.Time
}

// DaysUntilExpiry reports how many whole days remain before the item expires
// relative to now. Expired items yield negative values.
func (i *Item) DaysUntilExpiry(now time.Time) int {
	return int(i.ExpiresAt.Sub(now).Hours() / 24)
}

// PurchaseRecord is an append-only log entry mirroring a completed add.
// Records are never mutated or removed, even when the matching item leaves
// the pantry; all time-scoped spend figures derive from this log.
type PurchaseRecord struct {
	UPC       string
	Name      string
	UnitPrice int64 // cents
	Store     string
	Quantity  int
	Timestamp time.Time
}

// Total returns the full cost of the purchase in cents.
func (r PurchaseRecord) Total() int64 {
	return r.UnitPrice * int64(r.Quantity)
}
