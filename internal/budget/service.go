package budget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"smartpantry/internal/inventory"
	"smartpantry/internal/metrics"
	"smartpantry/internal/nlnum"
)

var ErrInvalidBudget = errors.New("monthly budget must be greater than zero")

const mealsPersona = "You are a practical meal planner. Answer with a single integer and nothing else."

// Ledger is the read-only slice of the inventory the aggregator needs.
// *inventory.Service satisfies it.
type Ledger interface {
	List(ctx context.Context) ([]*inventory.Item, error)
	Purchases(ctx context.Context) ([]inventory.PurchaseRecord, error)
}

// TextGenerator is the completion collaborator used for meal estimates.
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Service computes all budget figures at read time from the purchase log and
// the current inventory. Nothing here is a stored running total: the only
// persisted piece of state is the configured monthly ceiling.
type Service struct {
	ledger Ledger
	gen    TextGenerator

	mu      sync.Mutex
	ceiling int64 // cents; zero means unset
}

func NewService(ledger Ledger, gen TextGenerator) *Service {
	return &Service{ledger: ledger, gen: gen}
}

// SetCeiling sets the monthly budget ceiling in cents.
func (s *Service) SetCeiling(ceiling int64) error {
	if ceiling <= 0 {
		return ErrInvalidBudget
	}

	s.mu.Lock()
	s.ceiling = ceiling
	s.mu.Unlock()

	return nil
}

func (s *Service) Ceiling() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ceiling
}

// SpendThisMonth sums price*quantity over purchase records in the same
// calendar month and year as now. Always recomputed from the log.
func (s *Service) SpendThisMonth(ctx context.Context, now time.Time) (int64, error) {
	recs, err := s.ledger.Purchases(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading purchase log: %w", err)
	}

	var spent int64

	for _, rec := range recs {
		if rec.Timestamp.Year() == now.Year() && rec.Timestamp.Month() == now.Month() {
			spent += rec.Total()
		}
	}

	return spent, nil
}

// InventoryValue sums price*quantity over current items. The quantity used
// is the originally purchased one, matching the historical behavior of the
// system; partially consumed lots are valued at full price.
func (s *Service) InventoryValue(ctx context.Context) (int64, error) {
	items, err := s.ledger.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing inventory: %w", err)
	}

	var value int64

	for _, item := range items {
		value += item.Price * int64(item.Quantity)
	}

	return value, nil
}

// Summary is the full budget view returned by a budget read.
type Summary struct {
	Ceiling         int64
	SpentThisMonth  int64
	InventoryValue  int64
	RemainingBudget int64 // may be negative: overspend is a valid result
	CostPerDay      float64
}

func (s *Service) Summary(ctx context.Context, now time.Time) (Summary, error) {
	spent, err := s.SpendThisMonth(ctx, now)
	if err != nil {
		return Summary{}, err
	}

	value, err := s.InventoryValue(ctx)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Ceiling:         s.Ceiling(),
		SpentThisMonth:  spent,
		InventoryValue:  value,
		RemainingBudget: s.Ceiling() - spent,
		CostPerDay:      costPerDay(spent, now),
	}, nil
}

func costPerDay(spent int64, now time.Time) float64 {
	day := now.Day()
	if day == 0 {
		// Cannot happen with real calendars; guard anyway.
		return 0
	}

	return float64(spent) / float64(day)
}

// CostPerMeal is the value of the pantry divided by how many meals it can
// plausibly produce.
type CostPerMeal struct {
	TotalValue     int64
	EstimatedMeals int
	PerMeal        float64
}

// EstimateCostPerMeal asks the collaborator how many meals the current
// pantry yields and divides the inventory valuation by that count. A failed
// or unparseable estimate falls back to two meals per item.
func (s *Service) EstimateCostPerMeal(ctx context.Context) (CostPerMeal, error) {
	items, err := s.ledger.List(ctx)
	if err != nil {
		return CostPerMeal{}, fmt.Errorf("listing inventory: %w", err)
	}

	value, err := s.InventoryValue(ctx)
	if err != nil {
		return CostPerMeal{}, err
	}

	meals := s.estimateMeals(ctx, items)

	result := CostPerMeal{
		TotalValue:     value,
		EstimatedMeals: meals,
	}

	if meals > 0 {
		result.PerMeal = float64(value) / float64(meals)
	}

	return result, nil
}

func (s *Service) estimateMeals(ctx context.Context, items []*inventory.Item) int {
	prompt := fmt.Sprintf(
		"My pantry contains: %s. How many full meals can be made from it in total? Reply with an integer.",
		itemNames(items),
	)

	reply, err := s.gen.Generate(ctx, mealsPersona, prompt)
	if err != nil {
		slog.Warn("meal estimate unavailable, using fallback", "error", err)
		metrics.FallbacksTotal.WithLabelValues("cost_per_meal").Inc()

		return len(items) * 2
	}

	meals, ok := nlnum.FirstInt(reply)
	if !ok {
		slog.Warn("meal estimate reply had no count", "reply", reply)
		metrics.FallbacksTotal.WithLabelValues("cost_per_meal").Inc()

		return len(items) * 2
	}

	return meals
}

func itemNames(items []*inventory.Item) string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}

	return strings.Join(names, ", ")
}
