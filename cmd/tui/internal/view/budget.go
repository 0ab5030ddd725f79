package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"smartpantry/internal/budget"
)

type budgetState int

const (
	budgetStateView budgetState = iota
	budgetStateEdit
)

type BudgetModel struct {
	CommonModel
	budgetService *budget.Service

	state   budgetState
	summary budget.Summary
	form    *huh.Form
	loading bool
	err     error
	status  string

	formBudget string
}

func NewBudgetModel(budSvc *budget.Service) BudgetModel {
	return BudgetModel{
		budgetService: budSvc,
		loading:       true,
	}
}

func (m BudgetModel) Title() string { return "Budget" }
func (m BudgetModel) ShortHelp() string {
	if m.state == budgetStateEdit {
		return "Enter: save | Esc: cancel"
	}
	return "Esc: back | b: set monthly budget | r: refresh"
}

func (m BudgetModel) Init() tea.Cmd {
	return m.loadSummaryCmd()
}

func (m BudgetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadBudgetMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.summary = msg.summary
		return m, nil

	case budgetSavedMsg:
		m.state = budgetStateView
		m.form = nil
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.status = "Budget updated"
		return m, m.loadSummaryCmd()
	}

	switch m.state {
	case budgetStateView:
		return m.updateView(msg)
	case budgetStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m BudgetModel) updateView(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadSummaryCmd()
		case "b":
			m.formBudget = ""
			if m.summary.Ceiling > 0 {
				m.formBudget = FormatAmount(m.summary.Ceiling)
			}
			m.form = m.buildForm()
			m.state = budgetStateEdit
			return m, m.form.Init()
		}
	}

	return m, nil
}

func (m BudgetModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = budgetStateView
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m BudgetModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("budget").
				Title("Monthly Budget").
				Placeholder("500.00").
				Value(&m.formBudget).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil || v <= 0 {
						return fmt.Errorf("budget must be a positive number")
					}
					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m BudgetModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading budget...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	label := lipgloss.NewStyle().Faint(true).Render
	remainingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	if m.summary.RemainingBudget < 0 {
		remainingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		label("Monthly budget:   ")+FormatAmount(m.summary.Ceiling),
		label("Spent this month: ")+FormatAmount(m.summary.SpentThisMonth),
		label("Inventory value:  ")+FormatAmount(m.summary.InventoryValue),
		label("Remaining:        ")+remainingStyle.Render(FormatAmount(m.summary.RemainingBudget)),
		label("Cost per day:     ")+fmt.Sprintf("%.2f", m.summary.CostPerDay/100.0),
	)

	if m.state == budgetStateEdit && m.form != nil {
		content = lipgloss.JoinVertical(lipgloss.Left, content, "", m.form.View())
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type loadBudgetMsg struct {
	summary budget.Summary
	err     error
}

func (m BudgetModel) loadSummaryCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		sum, err := m.budgetService.Summary(ctx, time.Now().UTC())
		return loadBudgetMsg{summary: sum, err: err}
	}
}

type budgetSavedMsg struct {
	err error
}

func (m BudgetModel) saveCmd() tea.Cmd {
	value, _ := strconv.ParseFloat(strings.TrimSpace(m.formBudget), 64)
	cents := int64(value*100 + 0.5)

	return func() tea.Msg {
		return budgetSavedMsg{err: m.budgetService.SetCeiling(cents)}
	}
}
