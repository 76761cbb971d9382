package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/weekprogress/internal/config"
)

type styles struct {
	frame   lipgloss.Style
	title   lipgloss.Style
	control lipgloss.Style
	day     lipgloss.Style
	today   lipgloss.Style
	badge   lipgloss.Style
	percent lipgloss.Style
}

func newStyles(theme config.ThemeConfig) styles {
	accent := lipgloss.Color(theme.Accent)
	muted := lipgloss.Color(theme.Muted)
	highlight := lipgloss.Color(theme.Highlight)
	return styles{
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		title:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		control: lipgloss.NewStyle().Foreground(accent),
		day:     lipgloss.NewStyle().Foreground(muted),
		today: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Background(highlight),
		badge: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Background(highlight).
			Padding(0, 1),
		percent: lipgloss.NewStyle().Bold(true).Foreground(accent),
	}
}
