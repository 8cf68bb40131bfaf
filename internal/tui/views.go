package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/basket/internal/cli"
	"github.com/charmbracelet/lipgloss"
)

// View renders the browser.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(cli.BasketIcon + " " + m.title))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.theme.RoundedBox.Render(m.table.View()))
	b.WriteString("\n")
	b.WriteString(m.detail())
	b.WriteString("\n\n")

	if m.filtering {
		b.WriteString(m.filterInput.View())
	} else {
		b.WriteString(m.help.View(m.keymap))
	}
	return b.String()
}

func (m Model) statusLine() string {
	parts := []string{
		fmt.Sprintf("%d of %d rules", len(m.visible), len(m.rules)),
		"sorted by " + string(m.sortBy),
	}
	if m.filter != "" {
		parts = append(parts, fmt.Sprintf("filter: %q", m.filter))
	}
	return m.theme.Subtitle.Render(strings.Join(parts, " · "))
}

// detail shows the full text of the selected rule, which may be truncated in the table.
func (m Model) detail() string {
	rule, ok := m.Selected()
	if !ok {
		if len(m.rules) == 0 {
			return m.theme.StatusWarning.Render("No rules generated.")
		}
		return m.theme.StatusWarning.Render("No rules match the filter.")
	}

	metrics := fmt.Sprintf("support %.4f  confidence %.4f  lift %.4f", rule.Support, rule.Confidence, rule.Lift)
	liftStyle := m.theme.Normal
	if rule.Lift > 1 {
		liftStyle = m.theme.StatusSuccess
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Bold.Render(side(rule.Antecedent)+" "+cli.ArrowIcon+" "+side(rule.Consequent)),
		liftStyle.Render(metrics),
	)
}

func side(items []string) string {
	return "{" + strings.Join(items, ", ") + "}"
}
