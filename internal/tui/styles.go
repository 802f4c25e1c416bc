package tui

import (
	"charm.land/lipgloss/v2"
	"github.com/xonecas/xtermng/internal/theme"
)

// styles holds the chrome styles derived from the active palette.
type styles struct {
	Border        lipgloss.Style
	Header        lipgloss.Style
	HeaderFocused lipgloss.Style
	HeaderZoom    lipgloss.Style
}

func newStyles(p theme.Palette) styles {
	return styles{
		Border: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Dim)),
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)).
			Background(lipgloss.Color(p.Border)),
		HeaderFocused: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Bg)).
			Background(lipgloss.Color(p.Accent)).
			Bold(true),
		HeaderZoom: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Fg)).
			Background(lipgloss.Color(p.Border)),
	}
}
