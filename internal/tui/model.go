// Package tui provides an interactive browser for association rules.
package tui

import (
	"fmt"

	"github.com/Veraticus/basket/internal/cli"
	"github.com/Veraticus/basket/internal/model"
	"github.com/Veraticus/basket/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// chromeHeight is the number of lines used around the table.
const chromeHeight = 10

// Model holds the rule browser state.
type Model struct {
	theme       themes.Theme
	keymap      KeyMap
	help        help.Model
	filterInput textinput.Model
	table       table.Model
	title       string
	filter      string
	sortBy      cli.SortKey
	rules       []model.AssociationRule
	visible     []model.AssociationRule
	width       int
	height      int
	filtering   bool
	quitting    bool
}

// newModel creates a browser over rules.
func newModel(rules []model.AssociationRule, cfg Config) Model {
	columns := []table.Column{
		{Title: "Antecedent", Width: 30},
		{Title: "Consequent", Width: 24},
		{Title: "Support", Width: 9},
		{Title: "Confidence", Width: 10},
		{Title: "Lift", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, cfg.Height-chromeHeight)),
	)

	// Apply theme
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(cfg.Theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = cfg.Theme.Selected
	t.SetStyles(s)

	input := textinput.New()
	input.Placeholder = "Filter by item..."
	input.Prompt = "/ "
	input.CharLimit = 50

	m := Model{
		theme:       cfg.Theme,
		keymap:      DefaultKeyMap(),
		help:        help.New(),
		filterInput: input,
		table:       t,
		title:       cfg.Title,
		sortBy:      cfg.SortBy,
		rules:       rules,
		width:       cfg.Width,
		height:      cfg.Height,
	}
	if m.sortBy == "" {
		m.sortBy = cli.SortByLift
	}
	m.refresh()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(3, msg.Height-chromeHeight))
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.handleKeys(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Sort):
		m.sortBy = m.sortBy.Next()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.Filter):
		m.filtering = true
		m.filterInput.SetValue(m.filter)
		return m, m.filterInput.Focus()

	case key.Matches(msg, m.keymap.ClearFilter):
		if m.filter != "" {
			m.filter = ""
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// updateFilter applies the filter as it is typed.
func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Apply):
		m.filtering = false
		m.filterInput.Blur()
		return m, nil

	case key.Matches(msg, m.keymap.ClearFilter):
		m.filtering = false
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.filter = ""
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if value := m.filterInput.Value(); value != m.filter {
		m.filter = value
		m.refresh()
	}
	return m, cmd
}

// refresh recomputes the visible rules and table rows.
func (m *Model) refresh() {
	matched := m.rules
	if m.filter != "" {
		matched = make([]model.AssociationRule, 0, len(m.rules))
		for _, r := range m.rules {
			if r.Mentions(m.filter) {
				matched = append(matched, r)
			}
		}
	}
	m.visible = cli.SortRules(matched, m.sortBy)

	rows := make([]table.Row, len(m.visible))
	for i, r := range m.visible {
		rows[i] = table.Row{
			side(r.Antecedent),
			side(r.Consequent),
			fmt.Sprintf("%.4f", r.Support),
			fmt.Sprintf("%.4f", r.Confidence),
			fmt.Sprintf("%.4f", r.Lift),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(0, len(rows)-1))
	}
}

// Selected returns the rule under the cursor.
func (m Model) Selected() (model.AssociationRule, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return model.AssociationRule{}, false
	}
	return m.visible[i], true
}
