package tui

import (
	"fmt"
	"math"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

func (m Model) View() tea.View {
	v := tea.NewView(m.renderContent())
	v.AltScreen = true
	v.WindowTitle = m.title
	return v
}

// renderContent produces the string content for the view.
func (m Model) renderContent() string {
	if m.width == 0 || len(m.layout.panes) != len(m.panes) {
		return ""
	}

	paneLines := make([][]string, len(m.panes))
	for i, p := range m.panes {
		paneLines[i] = strings.Split(p.Render(), "\n")
	}
	divider := m.styles.Border.Render("│")

	var b strings.Builder
	for row := 0; row < m.height; row++ {
		for i := range m.panes {
			w := m.layout.panes[i].Dx()
			if row < headerRows {
				b.WriteString(m.renderHeader(i, w))
			} else {
				var line string
				if y := row - headerRows; y < len(paneLines[i]) {
					line = paneLines[i][y]
				}
				b.WriteString(fitWidth(line, w))
			}
			if i < len(m.panes)-1 {
				b.WriteString(divider)
			}
		}
		if row < m.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// renderHeader draws the title strip of pane i: its number and title on the
// left, the zoom level on the right.
func (m Model) renderHeader(i, width int) string {
	if width <= 0 {
		return ""
	}
	style := m.styles.Header
	if i == m.state.Focused {
		style = m.styles.HeaderFocused
	}
	zoom := fmt.Sprintf(" %d%% ", int(math.Round(m.state.Zoom*100)))
	label := fmt.Sprintf(" %d %s", i+1, m.panes[i].Title())

	zw := lipgloss.Width(zoom)
	if zw >= width {
		return style.Render(fitWidth(label, width))
	}
	left := fitWidth(label, width-zw)
	return style.Render(left) + m.styles.HeaderZoom.Render(zoom)
}

// fitWidth truncates or space-pads s to exactly width cells.
func fitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
