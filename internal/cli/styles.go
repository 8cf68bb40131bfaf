// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the wicker brown used for titles and prompts.
	PrimaryColor = lipgloss.Color("#D4A373")
	// SuccessColor marks completed imports, saved runs and strong metrics.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor marks interrupted or partial work.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor marks failed commands.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// InfoColor marks counts and hints.
	InfoColor = lipgloss.Color("#95E1D3")
	// SubtleColor is used for separators and borders.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for command titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	InfoStyle    = lipgloss.NewStyle().Foreground(InfoColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)

	// BoxStyle frames run summaries and basket statistics.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 1)

	// TableHeaderStyle is used for the header row of rule, run and item tables.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(PrimaryColor)

	// PromptStyle is used for confirmation prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	BasketIcon  = "🧺"
	ChartIcon   = "📊"
	FolderIcon  = "🗄️"
	ArrowIcon   = "→"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the basket icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(BasketIcon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " " + ArrowIcon + " ")
}

// RenderBox frames content under an icon and title.
func RenderBox(icon, title, content string) string {
	heading := TitleStyle.UnsetMargins().Render(icon + " " + title)
	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, heading, content))
}

// StyleTitle formats text as a title without the basket icon.
func StyleTitle(text string) string {
	return TitleStyle.Render(text)
}

// StyleMetric highlights a rule metric at or above threshold.
func StyleMetric(value, threshold float64, format string) string {
	text := fmt.Sprintf(format, value)
	if value >= threshold {
		return SuccessStyle.Render(text)
	}
	return text
}
