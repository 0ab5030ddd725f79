package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"smartpantry/internal/advisor"
)

type mealPlanState int

const (
	mealPlanStateForm mealPlanState = iota
	mealPlanStatePlanning
	mealPlanStateResult
)

type MealPlanModel struct {
	CommonModel
	advisorService *advisor.Service

	state   mealPlanState
	form    *huh.Form
	spinner spinner.Model
	plan    string
	err     error

	formDays    string
	formMembers string
}

func NewMealPlanModel(advSvc *advisor.Service) MealPlanModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := MealPlanModel{
		advisorService: advSvc,
		spinner:        s,
		formDays:       "7",
		formMembers:    "2",
	}
	m.form = m.buildForm()

	return m
}

func (m MealPlanModel) Title() string { return "Meal Plan" }
func (m MealPlanModel) ShortHelp() string {
	switch m.state {
	case mealPlanStatePlanning:
		return "Planning..."
	case mealPlanStateResult:
		return "Esc: back to menu"
	}
	return "Enter: plan | Esc: back"
}

func (m MealPlanModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m MealPlanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(planDoneMsg); ok {
		m.state = mealPlanStateResult
		m.plan = result.plan
		m.err = result.err
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.state != mealPlanStatePlanning {
			return m, Back
		}
	}

	switch m.state {
	case mealPlanStateForm:
		return m.updateForm(msg)
	case mealPlanStatePlanning:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m MealPlanModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = mealPlanStatePlanning
	return m, tea.Batch(m.spinner.Tick, m.planCmd())
}

func (m MealPlanModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("days").
				Title("Days").
				Description("1 to 14").
				Value(&m.formDays).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 || n > 14 {
						return fmt.Errorf("days must be between 1 and 14")
					}
					return nil
				}),

			huh.NewInput().
				Key("members").
				Title("Household Members").
				Value(&m.formMembers).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return fmt.Errorf("members must be at least 1")
					}
					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m MealPlanModel) View() string {
	switch m.state {
	case mealPlanStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case mealPlanStatePlanning:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Planning meals from your pantry...", m.spinner.View()),
		)

	case mealPlanStateResult:
		return m.viewResult()
	}

	return ""
}

func (m MealPlanModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Your Meal Plan")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			lipgloss.NewStyle().Width(76).Render(m.plan),
		),
	)
}

type planDoneMsg struct {
	plan string
	err  error
}

const planTimeout = 2 * time.Minute

func (m MealPlanModel) planCmd() tea.Cmd {
	days, _ := strconv.Atoi(strings.TrimSpace(m.formDays))
	members, _ := strconv.Atoi(strings.TrimSpace(m.formMembers))

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), planTimeout)
		defer cancel()

		plan, err := m.advisorService.MealPlan(ctx, days, members)
		return planDoneMsg{plan: plan, err: err}
	}
}
