package view

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"smartpantry/internal/inventory"
)

type addState int

const (
	addStateForm addState = iota
	addStateResult
)

type AddModel struct {
	CommonModel
	invService *inventory.Service

	state addState
	form  *huh.Form
	err   error
	added *inventory.Item

	// Form bindings
	formName     string
	formUPC      string
	formPrice    string
	formQuantity string
	formStore    string
	formCategory string
	formUnit     string
}

func NewAddModel(invSvc *inventory.Service) AddModel {
	m := AddModel{
		invService:   invSvc,
		formQuantity: "1",
	}
	m.form = m.buildForm()

	return m
}

func (m AddModel) Title() string { return "Add Grocery" }
func (m AddModel) ShortHelp() string {
	if m.state == addStateResult {
		return "Esc: back to menu"
	}
	return "Navigate form | Esc: cancel"
}

func (m AddModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(addDoneMsg); ok {
		m.state = addStateResult
		m.added = result.item
		m.err = result.err
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.state == addStateResult {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.addCmd()
}

func (m AddModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Description("Leave empty to resolve from the barcode").
				Value(&m.formName),

			huh.NewInput().
				Key("upc").
				Title("Barcode (UPC)").
				Placeholder("737628064502").
				Value(&m.formUPC),

			huh.NewInput().
				Key("price").
				Title("Unit Price").
				Placeholder("1.99").
				Value(&m.formPrice).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil || v <= 0 {
						return fmt.Errorf("price must be a positive number")
					}
					return nil
				}),

			huh.NewInput().
				Key("quantity").
				Title("Quantity").
				Value(&m.formQuantity).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return fmt.Errorf("quantity must be at least 1")
					}
					return nil
				}),

			huh.NewInput().
				Key("store").
				Title("Store").
				Value(&m.formStore),

			huh.NewInput().
				Key("category").
				Title("Category").
				Placeholder("dairy, meat, pantry, frozen, fresh").
				Value(&m.formCategory),

			huh.NewInput().
				Key("unit").
				Title("Unit").
				Placeholder("pack, bottle, kg").
				Value(&m.formUnit),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m AddModel) View() string {
	if m.state == addStateResult {
		return m.viewResult()
	}

	return lipgloss.NewStyle().Padding(1).Render(m.form.View())
}

func (m AddModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Added to Pantry!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			fmt.Sprintf("%s x%d", m.added.Name, m.added.Quantity),
			fmt.Sprintf("Expires: %s", FormatDate(m.added.ExpiresAt)),
		),
	)
}

type addDoneMsg struct {
	item *inventory.Item
	err  error
}

func (m AddModel) addCmd() tea.Cmd {
	price, _ := strconv.ParseFloat(strings.TrimSpace(m.formPrice), 64)
	quantity, _ := strconv.Atoi(strings.TrimSpace(m.formQuantity))

	params := inventory.AddParams{
		UPC:      strings.TrimSpace(m.formUPC),
		Name:     strings.TrimSpace(m.formName),
		Price:    int64(price*100 + 0.5),
		Store:    strings.TrimSpace(m.formStore),
		Quantity: quantity,
		Category: strings.TrimSpace(m.formCategory),
		Unit:     strings.TrimSpace(m.formUnit),
	}

	return func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		item, err := m.invService.Add(ctx, params)
		return addDoneMsg{item: item, err: err}
	}
}
