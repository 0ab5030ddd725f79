package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"smartpantry/internal/budget"
	"smartpantry/internal/inventory"
	"smartpantry/internal/location"
)

var (
	ErrInvalidDays    = errors.New("days must be between 1 and 14")
	ErrInvalidMembers = errors.New("members must be at least 1")
)

const (
	// EmptyPantryMessage is returned without contacting the collaborator
	// when there is nothing to plan with.
	EmptyPantryMessage = "Your pantry is empty. Add some groceries first, then ask again."

	// UnavailableMessage replaces the collaborator's answer when the call
	// fails. Advisory features degrade to a message instead of failing the
	// request.
	UnavailableMessage = "The pantry assistant is temporarily unavailable. Please try again in a moment."
)

const maxPlanDays = 14

// TextGenerator is the completion collaborator behind every advisory answer.
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Service assembles pantry and budget state into prompts and returns the
// collaborator's free-text answers verbatim. It never propagates collaborator
// failures: callers always get usable text.
type Service struct {
	inv    *inventory.Service
	budget *budget.Service
	loc    *location.Service
	gen    TextGenerator
}

func NewService(inv *inventory.Service, budget *budget.Service, loc *location.Service, gen TextGenerator) *Service {
	return &Service{inv: inv, budget: budget, loc: loc, gen: gen}
}

// MealPlan plans `days` days of meals for `members` people from the current
// pantry.
func (s *Service) MealPlan(ctx context.Context, days, members int) (string, error) {
	if days < 1 || days > maxPlanDays {
		return "", ErrInvalidDays
	}

	if members < 1 {
		return "", ErrInvalidMembers
	}

	now := time.Now().UTC()

	items, sum, empty, err := s.context(ctx, now)
	if err != nil {
		return "", err
	}

	if empty {
		return EmptyPantryMessage, nil
	}

	prompt := mealPlanPrompt(items, sum, s.loc.Get(), days, members, now)

	return s.generate(ctx, personaMealPlanner, prompt), nil
}

func (s *Service) WhatCanIEat(ctx context.Context) (string, error) {
	now := time.Now().UTC()

	items, _, empty, err := s.context(ctx, now)
	if err != nil {
		return "", err
	}

	if empty {
		return EmptyPantryMessage, nil
	}

	return s.generate(ctx, personaChef, whatCanIEatPrompt(items, now)), nil
}

func (s *Service) WasteTips(ctx context.Context) (string, error) {
	now := time.Now().UTC()

	items, _, empty, err := s.context(ctx, now)
	if err != nil {
		return "", err
	}

	if empty {
		return EmptyPantryMessage, nil
	}

	return s.generate(ctx, personaWasteCoach, wasteTipsPrompt(items, now)), nil
}

func (s *Service) SpendingAnalysis(ctx context.Context) (string, error) {
	now := time.Now().UTC()

	recs, err := s.inv.Purchases(ctx)
	if err != nil {
		return "", fmt.Errorf("reading purchase log: %w", err)
	}

	if len(recs) == 0 {
		return EmptyPantryMessage, nil
	}

	sum, err := s.budget.Summary(ctx, now)
	if err != nil {
		return "", err
	}

	return s.generate(ctx, personaFinance, spendingPrompt(recs, sum)), nil
}

// nearbyStores is static data: real store discovery is out of scope, the
// list only gives the collaborator something concrete to compare against.
var nearbyStores = []string{"Aldi", "Lidl", "Walmart", "Whole Foods", "local farmers market"}

func (s *Service) PriceComparison(ctx context.Context) (string, error) {
	recs, err := s.inv.Purchases(ctx)
	if err != nil {
		return "", fmt.Errorf("reading purchase log: %w", err)
	}

	if len(recs) == 0 {
		return EmptyPantryMessage, nil
	}

	spendByStore := make(map[string]int64)

	for _, rec := range recs {
		store := rec.Store
		if store == "" {
			store = "unknown store"
		}

		spendByStore[store] += rec.Total()
	}

	return s.generate(ctx, personaFinance, priceComparisonPrompt(spendByStore, nearbyStores, s.loc.Get())), nil
}

// CostPerMealResult pairs the aggregator's numbers with advisory text.
type CostPerMealResult struct {
	budget.CostPerMeal
	Text string
}

func (s *Service) CostPerMeal(ctx context.Context) (CostPerMealResult, error) {
	items, err := s.inv.List(ctx)
	if err != nil {
		return CostPerMealResult{}, fmt.Errorf("listing inventory: %w", err)
	}

	if len(items) == 0 {
		return CostPerMealResult{Text: EmptyPantryMessage}, nil
	}

	result, err := s.budget.EstimateCostPerMeal(ctx)
	if err != nil {
		return CostPerMealResult{}, err
	}

	return CostPerMealResult{
		CostPerMeal: result,
		Text:        s.generate(ctx, personaFinance, costPerMealPrompt(result)),
	}, nil
}

// context loads the pantry snapshot and budget summary shared by the
// inventory-driven prompts.
func (s *Service) context(ctx context.Context, now time.Time) ([]*inventory.Item, budget.Summary, bool, error) {
	items, err := s.inv.List(ctx)
	if err != nil {
		return nil, budget.Summary{}, false, fmt.Errorf("listing inventory: %w", err)
	}

	if len(items) == 0 {
		return nil, budget.Summary{}, true, nil
	}

	sum, err := s.budget.Summary(ctx, now)
	if err != nil {
		return nil, budget.Summary{}, false, err
	}

	return items, sum, false, nil
}

// generate runs the collaborator call and absorbs its failure into the fixed
// unavailable message.
func (s *Service) generate(ctx context.Context, persona, prompt string) string {
	text, err := s.gen.Generate(ctx, persona, prompt)
	if err != nil {
		slog.Warn("advisor generation failed", "error", err)
		return UnavailableMessage
	}

	return text
}
