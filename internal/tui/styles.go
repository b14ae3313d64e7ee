package tui

import (
	"fotosort/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles derived from the configured theme.
type Styles struct {
	App     lipgloss.Style
	Title   lipgloss.Style
	Info    lipgloss.Style
	Status  lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Prompt  lipgloss.Style
	Help    lipgloss.Style
}

// NewStyles builds the styles for theme.
func NewStyles(theme config.Theme) Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(theme.Primary)).
			Padding(0, 1),
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Info)),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#959595")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Error)),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Success)),
		Prompt: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Warning)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Border)).
			Padding(0, 1),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Emphasis)),
	}
}
