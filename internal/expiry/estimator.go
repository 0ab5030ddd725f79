package expiry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"smartpantry/internal/metrics"
	"smartpantry/internal/nlnum"
)

const (
	persona = "You are a food safety expert. Answer with a single integer and nothing else."

	minDays = 1
	maxDays = 365
)

// fallbackDays maps a category to a conservative shelf life in days, used
// whenever the collaborator cannot produce a usable estimate.
var fallbackDays = map[string]int{
	"fresh":  7,
	"dairy":  14,
	"meat":   5,
	"pantry": 180,
	"frozen": 90,
}

const defaultDays = 30

// TextGenerator is the completion collaborator consumed by the estimator.
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Estimator turns a product name and category into an expiry date. The AI
// path asks the collaborator for a shelf life in days; any failure along
// that path degrades to the per-category fallback table. Estimate never
// fails: callers can rely on getting a date unconditionally.
type Estimator struct {
	gen TextGenerator
}

func NewEstimator(gen TextGenerator) *Estimator {
	return &Estimator{gen: gen}
}

func (e *Estimator) Estimate(ctx context.Context, name, category string, now time.Time) time.Time {
	if category == "" {
		category = "unknown"
	}

	days, ok := e.askDays(ctx, name, category)
	if !ok {
		days = fallback(category)
		metrics.FallbacksTotal.WithLabelValues("expiry").Inc()
	}

	return now.AddDate(0, 0, days)
}

func (e *Estimator) askDays(ctx context.Context, name, category string) (int, bool) {
	prompt := fmt.Sprintf(
		"How many days does %q (category: %s) typically last before expiring? Reply with an integer number of days.",
		name, category,
	)

	reply, err := e.gen.Generate(ctx, persona, prompt)
	if err != nil {
		slog.Warn("expiry estimate unavailable, using fallback", "name", name, "error", err)
		return 0, false
	}

	days, ok := nlnum.FirstInt(reply)
	if !ok {
		slog.Warn("expiry reply had no day count", "name", name, "reply", reply)
		return 0, false
	}

	return clamp(days), true
}

// clamp bounds a day count to [1, 365]. Zero and negative counts come back
// as the safe minimum rather than failing the estimate.
func clamp(days int) int {
	if days < minDays {
		return minDays
	}

	if days > maxDays {
		return maxDays
	}

	return days
}

func fallback(category string) int {
	if days, ok := fallbackDays[strings.ToLower(category)]; ok {
		return days
	}

	return defaultDays
}
