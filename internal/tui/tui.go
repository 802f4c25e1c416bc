// Package tui is the application shell: it lays out the terminal panes side
// by side, routes key chords and repaints when a pane has new output.
package tui

import (
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/xonecas/xtermng/internal/constants"
	"github.com/xonecas/xtermng/internal/router"
	"github.com/xonecas/xtermng/internal/terminal"
	"github.com/xonecas/xtermng/internal/theme"
)

// Pane is one terminal widget as seen by the shell. *terminal.Host
// implements it.
type Pane interface {
	SetZoom(level float64)
	Focus()
	Blur()
	Resize(width, height int)
	Write(p []byte) error
	Paste(text string) error
	Render() string
	Title() string
	Refresh()
	Close() error
}

var _ Pane = (*terminal.Host)(nil)

// Options configures the application shell.
type Options struct {
	Title   string
	Palette theme.Palette
	Router  *router.Router
	// Events delivers terminal.OutputMsg and terminal.ExitedMsg from the
	// pane goroutines. May be nil.
	Events <-chan tea.Msg
}

// Model is the top-level bubbletea model.
type Model struct {
	width, height int
	title         string

	panes  []Pane
	router *router.Router
	state  router.State

	layout layout
	styles styles
	events <-chan tea.Msg
}

// New builds the shell around already-created panes. The first pane gets
// focus and every pane gets the initial zoom.
func New(panes []Pane, opts Options) (Model, error) {
	if opts.Router == nil {
		return Model{}, errors.New("tui: router is required")
	}
	if len(panes) != opts.Router.Panes() {
		return Model{}, fmt.Errorf("tui: got %d panes, router expects %d", len(panes), opts.Router.Panes())
	}
	title := opts.Title
	if title == "" {
		title = constants.AppName
	}
	m := Model{
		title:  title,
		panes:  panes,
		router: opts.Router,
		state:  opts.Router.Initial(),
		styles: newStyles(opts.Palette),
		events: opts.Events,
	}
	for _, p := range m.panes {
		p.SetZoom(m.state.Zoom)
	}
	m.focus(m.state.Focused)
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return m.waitForEvent()
}

// waitForEvent blocks on the next pane event. Exactly one waiter is
// outstanding at a time; each handled event re-arms it.
func (m Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		return <-events
	}
}

// State returns the current zoom and focus.
func (m Model) State() router.State { return m.state }

func (m Model) pane(i int) Pane {
	if i < 0 || i >= len(m.panes) {
		return nil
	}
	return m.panes[i]
}
