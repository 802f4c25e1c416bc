package tui

import (
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/xtermng/internal/router"
)

// handleKeyPress runs a key through the chord router. Returns
// (model, cmd, true) if the chord was consumed.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (Model, tea.Cmd, bool) {
	res := m.router.Route(m.state, router.ChordFromKey(msg))
	if !res.Handled {
		return *m, nil, false
	}
	if res.State != m.state {
		log.Debug().
			Str("key", msg.Keystroke()).
			Float64("zoom", res.State.Zoom).
			Int("focus", res.State.Focused).
			Msg("chord")
	}
	m.state = res.State
	m.apply(res.Commands)
	return *m, nil, true
}
