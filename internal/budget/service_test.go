package budget_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartpantry/internal/budget"
	"smartpantry/internal/inventory"
)

type stubLedger struct {
	items     []*inventory.Item
	purchases []inventory.PurchaseRecord
	err       error
}

func (s *stubLedger) List(_ context.Context) ([]*inventory.Item, error) {
	return s.items, s.err
}

func (s *stubLedger) Purchases(_ context.Context) ([]inventory.PurchaseRecord, error) {
	return s.purchases, s.err
}

type stubGenerator struct {
	reply string
	err   error
	calls int
}

func (s *stubGenerator) Generate(_ context.Context, _, _ string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func TestService_SetCeiling(t *testing.T) {
	svc := budget.NewService(&stubLedger{}, &stubGenerator{})

	assert.ErrorIs(t, svc.SetCeiling(0), budget.ErrInvalidBudget)
	assert.ErrorIs(t, svc.SetCeiling(-100), budget.ErrInvalidBudget)

	require.NoError(t, svc.SetCeiling(50000))
	assert.Equal(t, int64(50000), svc.Ceiling())

	// A later set replaces the earlier value outright.
	require.NoError(t, svc.SetCeiling(30000))
	assert.Equal(t, int64(30000), svc.Ceiling())
}

func TestService_SpendThisMonth(t *testing.T) {
	now := time.Date(2025, 6, 25, 10, 0, 0, 0, time.UTC)

	ledger := &stubLedger{
		purchases: []inventory.PurchaseRecord{
			{UnitPrice: 1000, Quantity: 2, Timestamp: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)},
			{UnitPrice: 500, Quantity: 1, Timestamp: time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)},
			{UnitPrice: 9999, Quantity: 1, Timestamp: time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)},
			{UnitPrice: 9999, Quantity: 1, Timestamp: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
		},
	}

	svc := budget.NewService(ledger, &stubGenerator{})

	spent, err := svc.SpendThisMonth(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), spent)
}

func TestService_Summary(t *testing.T) {
	now := time.Date(2025, 6, 25, 10, 0, 0, 0, time.UTC)

	ledger := &stubLedger{
		items: []*inventory.Item{
			{Name: "Milk", Price: 300, Quantity: 2, Remaining: 1},
			{Name: "Bread", Price: 200, Quantity: 1, Remaining: 1},
		},
		purchases: []inventory.PurchaseRecord{
			{UnitPrice: 1000, Quantity: 2, Timestamp: now.AddDate(0, 0, -5)},
			{UnitPrice: 500, Quantity: 1, Timestamp: now.AddDate(0, 0, -1)},
		},
	}

	svc := budget.NewService(ledger, &stubGenerator{})
	require.NoError(t, svc.SetCeiling(2000))

	got, err := svc.Summary(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, int64(2000), got.Ceiling)
	assert.Equal(t, int64(2500), got.SpentThisMonth)
	// Valuation uses the purchased quantity even when units were consumed.
	assert.Equal(t, int64(800), got.InventoryValue)
	assert.Equal(t, int64(-500), got.RemainingBudget, "overspend reports negative remaining")
	assert.InDelta(t, 100.0, got.CostPerDay, 0.001)
}

func TestService_Summary_NoBudgetSet(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	svc := budget.NewService(&stubLedger{}, &stubGenerator{})

	got, err := svc.Summary(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, int64(0), got.Ceiling)
	assert.Equal(t, int64(0), got.SpentThisMonth)
	assert.Equal(t, int64(0), got.RemainingBudget)
	assert.Equal(t, 0.0, got.CostPerDay)
}

func TestService_Summary_LedgerError(t *testing.T) {
	svc := budget.NewService(&stubLedger{err: errors.New("ledger down")}, &stubGenerator{})

	_, err := svc.Summary(context.Background(), time.Now())
	assert.Error(t, err)
}

func TestService_EstimateCostPerMeal(t *testing.T) {
	items := []*inventory.Item{
		{Name: "Rice", Price: 400, Quantity: 1},
		{Name: "Chicken", Price: 800, Quantity: 1},
		{Name: "Broccoli", Price: 300, Quantity: 2},
	}

	type testCase struct {
		name      string
		gen       *stubGenerator
		wantMeals int
	}

	tests := []testCase{
		{
			name:      "UsesReply",
			gen:       &stubGenerator{reply: "You can make about 6 meals."},
			wantMeals: 6,
		},
		{
			name:      "GeneratorErrorFallsBackToTwoPerItem",
			gen:       &stubGenerator{err: errors.New("timeout")},
			wantMeals: 6,
		},
		{
			name:      "UnparseableReplyFallsBackToTwoPerItem",
			gen:       &stubGenerator{reply: "plenty"},
			wantMeals: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := budget.NewService(&stubLedger{items: items}, tt.gen)

			got, err := svc.EstimateCostPerMeal(context.Background())
			require.NoError(t, err)

			assert.Equal(t, int64(1800), got.TotalValue)
			assert.Equal(t, tt.wantMeals, got.EstimatedMeals)
			assert.InDelta(t, 300.0, got.PerMeal, 0.001)
			assert.Equal(t, 1, tt.gen.calls)
		})
	}
}

func TestService_EstimateCostPerMeal_ZeroMeals(t *testing.T) {
	svc := budget.NewService(&stubLedger{}, &stubGenerator{reply: "0"})

	got, err := svc.EstimateCostPerMeal(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, got.EstimatedMeals)
	assert.Equal(t, 0.0, got.PerMeal, "zero meals must not divide")
}
