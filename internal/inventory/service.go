package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"smartpantry/internal/product"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=inventory
type Repository interface {
	// Insert commits an item and its mirrored purchase record atomically.
	Insert(ctx context.Context, item *Item, rec PurchaseRecord) error
	List(ctx context.Context) ([]*Item, error)
	// RemoveUnits walks items matching upc in insertion order, decrementing
	// remaining quantities (evicting at zero) until quantity units are gone
	// or no matches are left. Returns the number of units actually removed;
	// ErrNotFound when no units of upc exist at all.
	RemoveUnits(ctx context.Context, upc string, quantity int) (int, error)
	Clear(ctx context.Context) error
	Purchases(ctx context.Context) ([]PurchaseRecord, error)
}

// Catalog resolves a product code to catalog data. Lookups are best effort:
// the ledger tolerates any failure and falls back to a generic record.
type Catalog interface {
	Lookup(ctx context.Context, code string) (product.Product, error)
}

// Estimator produces an expiry timestamp for a named product. It is total:
// implementations must always return a usable timestamp.
type Estimator interface {
	Estimate(ctx context.Context, name, category string, now time.Time) time.Time
}

type Service struct {
	repo    Repository
	catalog Catalog
	expiry  Estimator
}

func NewService(repo Repository, catalog Catalog, expiry Estimator) *Service {
	return &Service{repo: repo, catalog: catalog, expiry: expiry}
}

type AddParams struct {
	UPC      string // optional; synthesized when empty
	Name     string // optional; resolved via catalog or defaulted
	Price    int64  // unit price in cents, must be > 0
	Store    string
	Quantity int // must be >= 1
	Category string // optional free text
	Unit     string
}

// Add validates the params, resolves missing product data, estimates an
// expiry date and commits the new item together with its purchase record.
// The catalog and estimator are called before the repository commit so no
// lock is held during collaborator I/O.
func (s *Service) Add(ctx context.Context, params AddParams) (*Item, error) {
	if params.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	if params.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	now := time.Now().UTC()

	item := &Item{
		ID:          uuid.New(),
		UPC:         params.UPC,
		Name:        params.Name,
		Unit:        params.Unit,
		Quantity:    params.Quantity,
		Remaining:   params.Quantity,
		Price:       params.Price,
		Store:       params.Store,
		Category:    params.Category,
		PurchasedAt: now,
	}

	if item.UPC == "" {
		item.UPC = fmt.Sprintf("item-%d", now.UnixNano())
	} else {
		s.resolveProduct(ctx, item)
	}

	if item.Name == "" {
		item.Name = "Unknown product"
	}

	item.ExpiresAt = s.expiry.Estimate(ctx, item.Name, item.Category, now)

	rec := PurchaseRecord{
		UPC:       item.UPC,
		Name:      item.Name,
		UnitPrice: item.Price,
		Store:     item.Store,
		Quantity:  item.Quantity,
		Timestamp: now,
	}

	if err := s.repo.Insert(ctx, item, rec); err != nil {
		return nil, fmt.Errorf("inserting item: %w", err)
	}

	return item, nil
}

// resolveProduct fills in name, category and nutrition from the catalog.
// Failures leave the caller-supplied values in place.
func (s *Service) resolveProduct(ctx context.Context, item *Item) {
	p, err := s.catalog.Lookup(ctx, item.UPC)
	if err != nil {
		slog.Warn("product lookup failed", "upc", item.UPC, "error", err)
		return
	}

	if !p.Found {
		return
	}

	if p.Name != "" {
		item.Name = p.Name
	}

	if item.Category == "" {
		item.Category = p.Category
	}

	item.Nutrition = p.Nutrition
}

// Remove takes up to quantity units of upc out of the pantry, oldest lots
// first. Removing fewer units than requested is not an error; removing zero
// is ErrNotFound.
func (s *Service) Remove(ctx context.Context, upc string, quantity int) (int, error) {
	if quantity < 1 {
		return 0, ErrInvalidQuantity
	}

	return s.repo.RemoveUnits(ctx, upc, quantity)
}

// Clear empties the pantry. The purchase log is untouched.
func (s *Service) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

// List returns a snapshot of current items in insertion order.
func (s *Service) List(ctx context.Context) ([]*Item, error) {
	return s.repo.List(ctx)
}

// Purchases returns the full append-only purchase history.
func (s *Service) Purchases(ctx context.Context) ([]PurchaseRecord, error) {
	return s.repo.Purchases(ctx)
}
