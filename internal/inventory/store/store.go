package store

import (
	"context"
	"sync"

	"smartpantry/internal/inventory"
)

// Store is the in-memory inventory repository. The pantry has no durability
// guarantee: all state lives for the process lifetime only. A single mutex
// serializes mutations so concurrent adds and removes cannot lose updates.
type Store struct {
	mu        sync.Mutex
	items     []*inventory.Item
	purchases []inventory.PurchaseRecord
}

func New() *Store {
	return &Store{}
}

func (s *Store) Insert(_ context.Context, item *inventory.Item, rec inventory.PurchaseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *item
	s.items = append(s.items, &copied)
	s.purchases = append(s.purchases, rec)

	return nil
}

// List returns copies of the current items in insertion order. Callers get
// a stable snapshot; the store retains sole ownership of the originals.
func (s *Store) List(_ context.Context) ([]*inventory.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]*inventory.Item, len(s.items))
	for i, item := range s.items {
		copied := *item
		items[i] = &copied
	}

	return items, nil
}

func (s *Store) RemoveUnits(_ context.Context, upc string, quantity int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	kept := s.items[:0]

	for _, item := range s.items {
		if item.UPC != upc || removed >= quantity {
			kept = append(kept, item)
			continue
		}

		take := quantity - removed
		if take > item.Remaining {
			take = item.Remaining
		}

		item.Remaining -= take
		removed += take

		if item.Remaining > 0 {
			kept = append(kept, item)
		}
	}

	// Zero out the tail so evicted items are not pinned by the backing array.
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = nil
	}

	s.items = kept

	if removed == 0 {
		return 0, inventory.ErrNotFound
	}

	return removed, nil
}

func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil

	return nil
}

func (s *Store) Purchases(_ context.Context) ([]inventory.PurchaseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := make([]inventory.PurchaseRecord, len(s.purchases))
	copy(recs, s.purchases)

	return recs, nil
}
