package advisor

import (
	"fmt"
	"strings"
	"time"

	"smartpantry/internal/budget"
	"smartpantry/internal/inventory"
	"smartpantry/internal/location"
)

// Fixed assistant personas, one per advisory endpoint.
const (
	personaMealPlanner = "You are a meal-planning expert who builds balanced, budget-aware plans."
	personaChef        = "You are a creative chef."
	personaWasteCoach  = "You are an eco-friendly cooking coach focused on zero waste."
	personaFinance     = "You are a household financial advisor."
)

// pantrySnapshot renders the inventory the way every advisory prompt expects
// it: one line per item with quantity, shelf life, price and category.
func pantrySnapshot(items []*inventory.Item, now time.Time) string {
	var sb strings.Builder

	for _, item := range items {
		fmt.Fprintf(&sb, "- %s: %d %s, expires in %d days, unit price %.2f",
			item.Name, item.Remaining, unitOrDefault(item.Unit), item.DaysUntilExpiry(now), cents(item.Price))

		if item.Category != "" {
			fmt.Fprintf(&sb, ", category %s", item.Category)
		}

		if kcal, ok := item.Nutrition["energy-kcal_100g"]; ok {
			fmt.Fprintf(&sb, ", %.0f kcal/100g", kcal)
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

func budgetContext(sum budget.Summary) string {
	if sum.Ceiling == 0 {
		return fmt.Sprintf("Spent this month: %.2f. No monthly budget configured.", cents(sum.SpentThisMonth))
	}

	return fmt.Sprintf("Monthly budget: %.2f. Spent this month: %.2f. Remaining: %.2f.",
		cents(sum.Ceiling), cents(sum.SpentThisMonth), cents(sum.RemainingBudget))
}

func locationContext(loc location.Location) string {
	if loc.City == "" {
		return ""
	}

	return fmt.Sprintf("The household is located in %s (%s).", loc.City, loc.Zip)
}

func mealPlanPrompt(items []*inventory.Item, sum budget.Summary, loc location.Location, days, members int, now time.Time) string {
	return fmt.Sprintf(
		"Pantry items:\n%s\n%s\n%s\nPlan %d days of balanced, budget-aware meals for %d people, using only these items, minimizing waste and cost. Prioritize items closest to expiry.",
		pantrySnapshot(items, now), budgetContext(sum), locationContext(loc), days, members,
	)
}

func whatCanIEatPrompt(items []*inventory.Item, now time.Time) string {
	return fmt.Sprintf(
		"I have these items:\n%s\nList all possible full meals I can cook right now.",
		pantrySnapshot(items, now),
	)
}

func wasteTipsPrompt(items []*inventory.Item, now time.Time) string {
	return fmt.Sprintf(
		"Suggest practical waste-reduction tips for these items, starting with the ones closest to expiry:\n%s",
		pantrySnapshot(items, now),
	)
}

func spendingPrompt(recs []inventory.PurchaseRecord, sum budget.Summary) string {
	var sb strings.Builder

	for _, rec := range recs {
		fmt.Fprintf(&sb, "- %s: %s x%d at %.2f from %s\n",
			rec.Timestamp.Format("2006-01-02"), rec.Name, rec.Quantity, cents(rec.UnitPrice), rec.Store)
	}

	return fmt.Sprintf(
		"Purchase history:\n%s\n%s\nAnalyze this household's grocery spending: trends, biggest cost drivers, and two concrete ways to save.",
		sb.String(), budgetContext(sum),
	)
}

func priceComparisonPrompt(spendByStore map[string]int64, stores []string, loc location.Location) string {
	var sb strings.Builder

	for store, spent := range spendByStore {
		fmt.Fprintf(&sb, "- %s: %.2f\n", store, cents(spent))
	}

	return fmt.Sprintf(
		"Spend per store so far:\n%s\nNearby stores: %s. %s\nCompare prices across these stores and suggest where this household should shop to save money.",
		sb.String(), strings.Join(stores, ", "), locationContext(loc),
	)
}

func costPerMealPrompt(result budget.CostPerMeal) string {
	return fmt.Sprintf(
		"A pantry worth %.2f yields an estimated %d meals (%.2f per meal). In two sentences, tell the household whether that is economical and how to lower it.",
		cents(result.TotalValue), result.EstimatedMeals, cents64(result.PerMeal),
	)
}

func unitOrDefault(unit string) string {
	if unit == "" {
		return "pcs"
	}

	return unit
}

func cents(v int64) float64 {
	return float64(v) / 100.0
}

func cents64(v float64) float64 {
	return v / 100.0
}
