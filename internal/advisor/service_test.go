package advisor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartpantry/internal/advisor"
	"smartpantry/internal/budget"
	"smartpantry/internal/inventory"
	"smartpantry/internal/inventory/store"
	"smartpantry/internal/location"
	"smartpantry/internal/product"
)

type stubCatalog struct{}

func (stubCatalog) Lookup(_ context.Context, code string) (product.Product, error) {
	return product.Product{Code: code}, nil
}

type stubEstimator struct{}

func (stubEstimator) Estimate(_ context.Context, _, _ string, now time.Time) time.Time {
	return now.AddDate(0, 0, 7)
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

func newFixture(t *testing.T, gen *stubGenerator) (*advisor.Service, *inventory.Service) {
	t.Helper()

	inv := inventory.NewService(store.New(), stubCatalog{}, stubEstimator{})
	bud := budget.NewService(inv, gen)
	loc := location.NewService()

	return advisor.NewService(inv, bud, loc, gen), inv
}

func stock(t *testing.T, inv *inventory.Service) {
	t.Helper()

	for _, p := range []inventory.AddParams{
		{Name: "Rice", Price: 400, Quantity: 1, Category: "pantry", Store: "Aldi"},
		{Name: "Chicken", Price: 800, Quantity: 2, Category: "meat", Store: "Lidl"},
	} {
		_, err := inv.Add(context.Background(), p)
		require.NoError(t, err)
	}
}

func TestService_MealPlan(t *testing.T) {
	type testCase struct {
		name      string
		days      int
		members   int
		fill      bool
		gen       *stubGenerator
		want      string
		wantCalls int
		wantErr   error
	}

	tests := []testCase{
		{
			name:      "Success",
			days:      7,
			members:   2,
			fill:      true,
			gen:       &stubGenerator{reply: "Day 1: rice and chicken."},
			want:      "Day 1: rice and chicken.",
			wantCalls: 1,
		},
		{
			name:      "EmptyPantryShortCircuits",
			days:      3,
			members:   1,
			gen:       &stubGenerator{reply: "should not be used"},
			want:      advisor.EmptyPantryMessage,
			wantCalls: 0,
		},
		{
			name:      "GeneratorFailureDegrades",
			days:      7,
			members:   2,
			fill:      true,
			gen:       &stubGenerator{err: errors.New("model overloaded")},
			want:      advisor.UnavailableMessage,
			wantCalls: 1,
		},
		{
			name:    "ZeroDays",
			days:    0,
			members: 2,
			gen:     &stubGenerator{},
			wantErr: advisor.ErrInvalidDays,
		},
		{
			name:    "TooManyDays",
			days:    15,
			members: 2,
			gen:     &stubGenerator{},
			wantErr: advisor.ErrInvalidDays,
		},
		{
			name:    "ZeroMembers",
			days:    7,
			members: 0,
			gen:     &stubGenerator{},
			wantErr: advisor.ErrInvalidMembers,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, inv := newFixture(t, tt.gen)
			if tt.fill {
				stock(t, inv)
			}

			got, err := svc.MealPlan(context.Background(), tt.days, tt.members)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, tt.gen.calls)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCalls, tt.gen.calls)
		})
	}
}

func TestService_WhatCanIEat(t *testing.T) {
	gen := &stubGenerator{reply: "Stir-fry the chicken with rice."}
	svc, inv := newFixture(t, gen)
	stock(t, inv)

	got, err := svc.WhatCanIEat(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Stir-fry the chicken with rice.", got)
}

func TestService_WhatCanIEat_EmptyPantry(t *testing.T) {
	gen := &stubGenerator{}
	svc, _ := newFixture(t, gen)

	got, err := svc.WhatCanIEat(context.Background())
	require.NoError(t, err)
	assert.Equal(t, advisor.EmptyPantryMessage, got)
	assert.Zero(t, gen.calls)
}

func TestService_WasteTips_EmptyPantry(t *testing.T) {
	gen := &stubGenerator{}
	svc, _ := newFixture(t, gen)

	got, err := svc.WasteTips(context.Background())
	require.NoError(t, err)
	assert.Equal(t, advisor.EmptyPantryMessage, got)
	assert.Zero(t, gen.calls)
}

func TestService_SpendingAnalysis(t *testing.T) {
	gen := &stubGenerator{reply: "You spent most at Lidl."}
	svc, inv := newFixture(t, gen)
	stock(t, inv)

	got, err := svc.SpendingAnalysis(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "You spent most at Lidl.", got)
}

func TestService_SpendingAnalysis_NoPurchases(t *testing.T) {
	gen := &stubGenerator{}
	svc, _ := newFixture(t, gen)

	got, err := svc.SpendingAnalysis(context.Background())
	require.NoError(t, err)
	assert.Equal(t, advisor.EmptyPantryMessage, got)
	assert.Zero(t, gen.calls)
}

func TestService_SpendingAnalysis_SurvivesClear(t *testing.T) {
	gen := &stubGenerator{reply: "Spending summary."}
	svc, inv := newFixture(t, gen)
	stock(t, inv)

	require.NoError(t, inv.Clear(context.Background()))

	// Purchases are append-only, so the analysis still has data to work with.
	got, err := svc.SpendingAnalysis(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Spending summary.", got)
}

func TestService_PriceComparison_NoPurchases(t *testing.T) {
	gen := &stubGenerator{}
	svc, _ := newFixture(t, gen)

	got, err := svc.PriceComparison(context.Background())
	require.NoError(t, err)
	assert.Equal(t, advisor.EmptyPantryMessage, got)
	assert.Zero(t, gen.calls)
}

func TestService_CostPerMeal(t *testing.T) {
	gen := &stubGenerator{reply: "4"}
	svc, inv := newFixture(t, gen)
	stock(t, inv)

	got, err := svc.CostPerMeal(context.Background())
	require.NoError(t, err)

	// Rice 400x1 + Chicken 800x2 = 2000 cents over 4 meals.
	assert.Equal(t, int64(2000), got.TotalValue)
	assert.Equal(t, 4, got.EstimatedMeals)
	assert.InDelta(t, 500.0, got.PerMeal, 0.001)
	assert.Equal(t, "4", got.Text)
}

func TestService_CostPerMeal_EmptyPantry(t *testing.T) {
	gen := &stubGenerator{}
	svc, _ := newFixture(t, gen)

	got, err := svc.CostPerMeal(context.Background())
	require.NoError(t, err)
	assert.Equal(t, advisor.EmptyPantryMessage, got.Text)
	assert.Zero(t, got.EstimatedMeals)
	assert.Zero(t, gen.calls)
}
