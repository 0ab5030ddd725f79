package view

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"smartpantry/internal/inventory"
)

type PantryModel struct {
	CommonModel
	invService *inventory.Service

	table   table.Model
	items   []*inventory.Item
	loading bool
	err     error
	status  string
}

func NewPantryModel(invSvc *inventory.Service) PantryModel {
	columns := []table.Column{
		{Title: "Name", Width: 28},
		{Title: "Left", Width: 6},
		{Title: "Unit", Width: 8},
		{Title: "Price", Width: 8},
		{Title: "Store", Width: 14},
		{Title: "Expires", Width: 12},
		{Title: "Days", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return PantryModel{
		invService: invSvc,
		table:      t,
		loading:    true,
	}
}

func (m PantryModel) Title() string { return "Pantry" }
func (m PantryModel) ShortHelp() string {
	return "Esc: back | x: use one unit | r: refresh"
}

func (m PantryModel) Init() tea.Cmd {
	return m.loadItemsCmd()
}

func (m PantryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadPantryMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.items = msg.items
		m.refreshTable()
		return m, nil

	case removeDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Remove failed: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Removed %d unit(s)", msg.removed)
		}
		return m, m.loadItemsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadItemsCmd()
		case "x":
			return m, m.removeOneCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m PantryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading pantry...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.status != "" {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + tableView,
		)
	}

	return lipgloss.NewStyle().Padding(1).Render(tableView)
}

func (m *PantryModel) refreshTable() {
	now := time.Now().UTC()

	rows := make([]table.Row, 0, len(m.items))
	for _, item := range m.items {
		rows = append(rows, table.Row{
			item.Name,
			strconv.Itoa(item.Remaining),
			item.Unit,
			FormatAmount(item.Price),
			item.Store,
			FormatDate(item.ExpiresAt),
			strconv.Itoa(item.DaysUntilExpiry(now)),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadPantryMsg struct {
	items []*inventory.Item
	err   error
}

func (m PantryModel) loadItemsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		items, err := m.invService.List(ctx)
		return loadPantryMsg{items: items, err: err}
	}
}

type removeDoneMsg struct {
	removed int
	err     error
}

func (m PantryModel) removeOneCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}

	upc := m.items[idx].UPC

	return func() tea.Msg {
		ctx, cancel := SvcCtx()
		defer cancel()

		removed, err := m.invService.Remove(ctx, upc, 1)
		return removeDoneMsg{removed: removed, err: err}
	}
}
