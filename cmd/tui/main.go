package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"smartpantry/cmd/tui/internal/view"
	"smartpantry/internal/advisor"
	"smartpantry/internal/budget"
	"smartpantry/internal/config"
	"smartpantry/internal/expiry"
	"smartpantry/internal/inventory"
	invStore "smartpantry/internal/inventory/store"
	"smartpantry/internal/llm"
	"smartpantry/internal/location"
	"smartpantry/internal/product"
)

type model struct {
	invService     *inventory.Service
	budgetService  *budget.Service
	advisorService *advisor.Service

	currentView View

	pantryView   view.PantryModel
	addView      view.AddModel
	budgetView   view.BudgetModel
	mealPlanView view.MealPlanModel
}

type View int

const (
	ViewMenu     View = 0
	ViewPantry   View = 1
	ViewAdd      View = 2
	ViewBudget   View = 3
	ViewMealPlan View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	gen, err := llm.New(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.Timeout)
	if err != nil {
		slog.Error("failed to initialize text generation client", "error", err)
		os.Exit(1)
	}

	catalog := product.NewCache(product.NewClient(cfg.Products.BaseURL, cfg.Products.Timeout))

	invSvc := inventory.NewService(invStore.New(), catalog, expiry.NewEstimator(gen))
	budSvc := budget.NewService(invSvc, gen)
	locSvc := location.NewService()
	advSvc := advisor.NewService(invSvc, budSvc, locSvc, gen)

	return model{
		invService:     invSvc,
		budgetService:  budSvc,
		advisorService: advSvc,
		currentView:    ViewMenu,
		pantryView:     view.NewPantryModel(invSvc),
		addView:        view.NewAddModel(invSvc),
		budgetView:     view.NewBudgetModel(budSvc),
		mealPlanView:   view.NewMealPlanModel(advSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewPantry
				m.pantryView = view.NewPantryModel(m.invService)

				return m, m.pantryView.Init()
			case "2":
				m.currentView = ViewAdd
				m.addView = view.NewAddModel(m.invService)

				return m, m.addView.Init()
			case "3":
				m.currentView = ViewBudget
				m.budgetView = view.NewBudgetModel(m.budgetService)

				return m, m.budgetView.Init()
			case "4":
				m.currentView = ViewMealPlan
				m.mealPlanView = view.NewMealPlanModel(m.advisorService)

				return m, m.mealPlanView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewPantry:
		var newModel tea.Model
		newModel, cmd = m.pantryView.Update(msg)
		m.pantryView = newModel.(view.PantryModel)
	case ViewAdd:
		var newModel tea.Model
		newModel, cmd = m.addView.Update(msg)
		m.addView = newModel.(view.AddModel)
	case ViewBudget:
		var newModel tea.Model
		newModel, cmd = m.budgetView.Update(msg)
		m.budgetView = newModel.(view.BudgetModel)
	case ViewMealPlan:
		var newModel tea.Model
		newModel, cmd = m.mealPlanView.Update(msg)
		m.mealPlanView = newModel.(view.MealPlanModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"SmartPantry TUI\n\n" +
				"1. Browse Pantry\n" +
				"2. Add Grocery\n" +
				"3. Budget\n" +
				"4. Meal Plan\n\n" +
				"q. Quit",
		)
	case ViewPantry:
		return m.pantryView.View()
	case ViewAdd:
		return m.addView.View()
	case ViewBudget:
		return m.budgetView.View()
	case ViewMealPlan:
		return m.mealPlanView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
