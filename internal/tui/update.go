package tui

import (
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/xtermng/internal/router"
	"github.com/xonecas/xtermng/internal/terminal"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	case tea.PasteMsg:
		m.pasteFocused(msg.Content)
		return m, nil

	case tea.KeyPressMsg:
		mdl, cmd, handled := m.handleKeyPress(msg)
		if handled {
			return mdl, cmd
		}
		m.writeFocused(terminal.KeyBytes(msg))
		return m, nil

	case terminal.OutputMsg:
		if p := m.pane(msg.Pane); p != nil {
			p.Refresh()
		}
		return m, m.waitForEvent()

	case terminal.ExitedMsg:
		ev := log.Info().Int("pane", msg.Pane)
		if msg.Err != nil {
			ev = ev.Err(msg.Err)
		}
		ev.Msg("pane closed, quitting")
		return m, tea.Quit
	}
	return m, nil
}

// apply executes router commands against the panes.
func (m *Model) apply(cmds []router.Command) {
	for _, c := range cmds {
		switch c.Kind {
		case router.SetZoom:
			if p := m.pane(c.Pane); p != nil {
				p.SetZoom(c.Zoom)
			}
		case router.Focus:
			m.focus(c.Pane)
		}
	}
}

// focus gives keyboard focus to pane i and takes it from the others.
func (m *Model) focus(i int) {
	for j, p := range m.panes {
		if j == i {
			p.Focus()
		} else {
			p.Blur()
		}
	}
}

func (m *Model) writeFocused(data []byte) {
	if len(data) == 0 {
		return
	}
	p := m.pane(m.state.Focused)
	if p == nil {
		return
	}
	if err := p.Write(data); err != nil {
		log.Debug().Err(err).Int("pane", m.state.Focused).Msg("write to pane")
	}
}

func (m *Model) pasteFocused(text string) {
	p := m.pane(m.state.Focused)
	if text == "" || p == nil {
		return
	}
	if err := p.Paste(text); err != nil {
		log.Debug().Err(err).Int("pane", m.state.Focused).Msg("paste to pane")
	}
}
