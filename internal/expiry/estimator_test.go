package expiry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"smartpantry/internal/expiry"
)

type stubGenerator struct {
	reply string
	err   error
	calls int
}

func (s *stubGenerator) Generate(_ context.Context, _, _ string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func TestEstimator_Estimate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	type testCase struct {
		name     string
		itemName string
		category string
		gen      *stubGenerator
		wantDays int
	}

	tests := []testCase{
		{
			name:     "UsesReply",
			itemName: "Whole Milk",
			category: "dairy",
			gen:      &stubGenerator{reply: "14"},
			wantDays: 14,
		},
		{
			name:     "ParsesProse",
			itemName: "Canned Beans",
			category: "pantry",
			gen:      &stubGenerator{reply: "They typically last about 120 days."},
			wantDays: 120,
		},
		{
			name:     "ClampsHigh",
			itemName: "Honey",
			category: "pantry",
			gen:      &stubGenerator{reply: "approximately 400 days"},
			wantDays: 365,
		},
		{
			name:     "ClampsLow",
			itemName: "Oysters",
			category: "fresh",
			gen:      &stubGenerator{reply: "0"},
			wantDays: 1,
		},
		{
			name:     "UnparseableFallsBackToCategory",
			itemName: "Yogurt",
			category: "dairy",
			gen:      &stubGenerator{reply: "N/A"},
			wantDays: 14,
		},
		{
			name:     "GeneratorErrorFallsBackToCategory",
			itemName: "Chicken Breast",
			category: "meat",
			gen:      &stubGenerator{err: errors.New("rate limited")},
			wantDays: 5,
		},
		{
			name:     "UnknownCategoryDefault",
			itemName: "Mystery Jar",
			category: "",
			gen:      &stubGenerator{err: errors.New("unreachable")},
			wantDays: 30,
		},
		{
			name:     "FallbackCategoryCaseInsensitive",
			itemName: "Frozen Peas",
			category: "Frozen",
			gen:      &stubGenerator{reply: "no idea"},
			wantDays: 90,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := expiry.NewEstimator(tt.gen)

			got := est.Estimate(context.Background(), tt.itemName, tt.category, now)

			assert.Equal(t, now.AddDate(0, 0, tt.wantDays), got)
			assert.Equal(t, 1, tt.gen.calls, "expected exactly one generation attempt")
		})
	}
}
