// Package router maps window-level key chords to zoom and focus changes.
//
// Route is a pure function over State: it never touches a pane. It returns
// the next State and the per-pane commands the caller must apply, which lets
// the event-loop driver own every side effect.
package router

import (
	"fmt"
	"math"

	"github.com/xonecas/xtermng/internal/constants"
)

// zoomGrid is the resolution zoom levels are kept at, so that repeated
// steps land on exact values (1.0 + 3 steps == 1.3).
const zoomGrid = 1 / constants.MinZoomStep

// State is the process-wide application state.
type State struct {
	Zoom    float64 // shared font scale, always >= the zoom step
	Focused int     // index of the pane receiving pass-through input
}

// CommandKind identifies what a Command asks a pane to do.
type CommandKind int

const (
	// SetZoom applies Command.Zoom to the pane.
	SetZoom CommandKind = iota
	// Focus gives the pane keyboard focus.
	Focus
)

func (k CommandKind) String() string {
	switch k {
	case SetZoom:
		return "set-zoom"
	case Focus:
		return "focus"
	}
	return fmt.Sprintf("CommandKind(%d)", int(k))
}

// Command is a single instruction for one pane.
type Command struct {
	Kind CommandKind
	Pane int
	Zoom float64
}

// Result is the outcome of routing one chord.
type Result struct {
	State    State
	Commands []Command
	Handled  bool
}

// Router holds the fixed parameters of the chord table.
type Router struct {
	panes       int
	step        float64
	defaultZoom float64
}

// New creates a Router for n panes. step is the zoom increment and floor;
// defaultZoom is the level restored by the reset chord.
func New(panes int, step, defaultZoom float64) (*Router, error) {
	if panes < 1 {
		return nil, fmt.Errorf("router: need at least one pane, got %d", panes)
	}
	if step < constants.MinZoomStep {
		return nil, fmt.Errorf("router: zoom step must be at least %v, got %v", constants.MinZoomStep, step)
	}
	if defaultZoom < step {
		return nil, fmt.Errorf("router: default zoom %v below step %v", defaultZoom, step)
	}
	return &Router{panes: panes, step: step, defaultZoom: defaultZoom}, nil
}

// Initial returns the startup state: default zoom, focus on pane 0.
func (r *Router) Initial() State {
	return State{Zoom: snap(r.defaultZoom), Focused: 0}
}

// Panes returns the number of panes the router was built for.
func (r *Router) Panes() int { return r.panes }

// Route applies one chord to s. Chords without Ctrl, and Ctrl chords not in
// the table, leave s unchanged and are reported unhandled so the caller can
// pass the key through to the focused pane.
func (r *Router) Route(s State, c Chord) Result {
	unhandled := Result{State: s}
	if !c.Ctrl {
		return unhandled
	}

	switch c.action() {
	case actionZoomIn:
		return r.zoomTo(s, s.Zoom+r.step)
	case actionZoomOut:
		return r.zoomTo(s, s.Zoom-r.step)
	case actionZoomReset:
		return r.zoomTo(s, r.defaultZoom)
	case actionToggleFocus:
		next := s
		next.Focused = r.toggle(s.Focused)
		return Result{
			State:    next,
			Commands: []Command{{Kind: Focus, Pane: next.Focused}},
			Handled:  true,
		}
	}
	return unhandled
}

// zoomTo clamps z to the step floor and emits SetZoom for every pane.
func (r *Router) zoomTo(s State, z float64) Result {
	z = snap(z)
	if floor := snap(r.step); z < floor {
		z = floor
	}
	next := s
	next.Zoom = z

	cmds := make([]Command, 0, r.panes)
	for i := range r.panes {
		cmds = append(cmds, Command{Kind: SetZoom, Pane: i, Zoom: z})
	}
	return Result{State: next, Commands: cmds, Handled: true}
}

// toggle advances focus to the next pane, wrapping around. With two panes
// "next" and "previous" are the same move.
func (r *Router) toggle(focused int) int {
	if focused < 0 || focused >= r.panes {
		return 0
	}
	return (focused + 1) % r.panes
}

// Valid reports whether s satisfies the state invariants for this router.
func (r *Router) Valid(s State) bool {
	return s.Focused >= 0 && s.Focused < r.panes && s.Zoom >= snap(r.step)
}

func snap(z float64) float64 {
	return math.Round(z*zoomGrid) / zoomGrid
}
