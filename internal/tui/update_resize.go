package tui

import (
	tea "charm.land/bubbletea/v2"
)

// handleResize applies a window size change and re-derives layout.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	m.layout = generateLayout(m.width, m.height, len(m.panes))
	m.updatePaneSizes()
}

// updatePaneSizes pushes layout dimensions to the panes.
func (m *Model) updatePaneSizes() {
	for i, p := range m.panes {
		r := m.layout.panes[i]
		p.Resize(r.Dx(), r.Dy())
	}
}
