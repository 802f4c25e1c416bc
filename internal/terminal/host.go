// Package terminal hosts one shell per pane: a child process on its own PTY
// whose output is interpreted by a VT emulator and painted on request.
//
// PTY reads and the child wait run on their own goroutines. They never touch
// UI state; they only feed the emulator (which has its own lock) and post
// OutputMsg/ExitedMsg on the event channel for the event loop to handle.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/creack/pty"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/xtermng/internal/constants"
	"github.com/xonecas/xtermng/internal/shell"
)

const readBufferSize = 32 * 1024

// PaneIDEnv names the variable that tells the child which pane it runs in.
// The value matches the pane_id field in the log.
const PaneIDEnv = "XTERMNG_PANE_ID"

// Options configures a new Host.
type Options struct {
	Index  int      // pane index, reported in events
	Argv   []string // shell command, see shell.Resolve
	Dir    string   // working directory of the child
	Term   string   // TERM for the child; constants.DefaultTerm if empty
	Env    []string // extra KEY=VALUE pairs on top of os.Environ()
	Width  int      // pane area in cells
	Height int
	Zoom   float64 // current process-wide zoom level
	// Events receives OutputMsg and ExitedMsg. May be nil.
	Events chan<- tea.Msg
}

// Host is one terminal pane: an emulator bound to a shell on a PTY.
type Host struct {
	id     string
	index  int
	name   string
	cmd    *exec.Cmd
	ptmx   *os.File
	screen *screen
	events chan<- tea.Msg

	focused bool
	zoom    float64

	modes     modeTracker
	pending   atomic.Bool
	exited    atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
}

// Create spawns the shell on a new PTY sized for the pane at the given zoom.
// Failures are returned as *SpawnError.
func Create(opts Options) (*Host, error) {
	spawnErr := func(err error) error {
		return &SpawnError{Pane: opts.Index, Argv: opts.Argv, Dir: opts.Dir, Err: err}
	}
	if len(opts.Argv) == 0 {
		return nil, spawnErr(shell.ErrEmpty)
	}

	term := opts.Term
	if term == "" {
		term = constants.DefaultTerm
	}

	id := uuid.NewString()
	cmd := exec.Command(opts.Argv[0], opts.Argv[1:]...)
	cmd.Dir = opts.Dir
	cmd.Env = append(os.Environ(), "TERM="+term, PaneIDEnv+"="+id)
	cmd.Env = append(cmd.Env, opts.Env...)

	cols, rows := gridSize(max(opts.Width, 1), max(opts.Height, 1), opts.Zoom)
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return nil, spawnErr(err)
	}

	h := &Host{
		id:     id,
		index:  opts.Index,
		name:   shell.Name(opts.Argv),
		cmd:    cmd,
		ptmx:   ptmx,
		screen: newScreen(opts.Width, opts.Height, opts.Zoom, ptmx),
		events: opts.Events,
		zoom:   opts.Zoom,
		done:   make(chan struct{}),
	}

	log.Info().
		Str("pane_id", h.id).
		Int("pane", h.index).
		Int("pid", cmd.Process.Pid).
		Strs("argv", opts.Argv).
		Str("dir", opts.Dir).
		Msg("spawned shell")

	go h.readLoop()
	go h.wait()
	return h, nil
}

// ID returns the pane's unique identifier, exported to the child as
// PaneIDEnv and used in logs.
func (h *Host) ID() string { return h.id }

// Index returns the pane index.
func (h *Host) Index() int { return h.index }

// Pid returns the child process id.
func (h *Host) Pid() int { return h.cmd.Process.Pid }

// Zoom returns the last zoom level applied.
func (h *Host) Zoom() float64 { return h.zoom }

// SetZoom applies a font scale. Bounds are the caller's concern.
func (h *Host) SetZoom(level float64) {
	h.zoom = level
	if cols, rows, changed := h.screen.setZoom(level); changed {
		h.setsize(cols, rows)
	}
}

// Resize updates the pane area.
func (h *Host) Resize(width, height int) {
	if cols, rows, changed := h.screen.resize(width, height); changed {
		h.setsize(cols, rows)
	}
}

func (h *Host) setsize(cols, rows int) {
	if h.exited.Load() {
		return
	}
	ws := &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)}
	if err := pty.Setsize(h.ptmx, ws); err != nil {
		log.Warn().Err(err).Str("pane_id", h.id).Int("cols", cols).Int("rows", rows).Msg("pty resize failed")
	}
}

// Focus marks the pane as receiving keyboard input.
func (h *Host) Focus() { h.focused = true }

// Blur clears the focus mark.
func (h *Host) Blur() { h.focused = false }

// Focused reports whether the pane has keyboard focus.
func (h *Host) Focused() bool { return h.focused }

// Write forwards input to the child.
func (h *Host) Write(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if h.exited.Load() {
		return fmt.Errorf("pane %d: shell has exited", h.index)
	}
	_, err := h.ptmx.Write(p)
	return err
}

// Paste forwards pasted text, wrapped in bracketed-paste markers when the
// child has enabled them so shells insert it instead of running each line.
func (h *Host) Paste(text string) error {
	return h.Write(pasteBytes(text, h.modes.bracketedPaste()))
}

// Render paints the pane area.
func (h *Host) Render() string {
	return h.screen.render(h.focused)
}

// Title returns the title set by the child, or the shell name.
func (h *Host) Title() string {
	if t := h.screen.title(); t != "" {
		return t
	}
	return h.name
}

// Refresh re-arms OutputMsg delivery after the event loop repainted.
func (h *Host) Refresh() { h.pending.Store(false) }

// Close kills the child if it is still running and releases the PTY.
func (h *Host) Close() error {
	var err error
	h.closeOnce.Do(func() {
		close(h.done)
		if !h.exited.Load() {
			if kerr := h.cmd.Process.Kill(); kerr != nil && !errors.Is(kerr, os.ErrProcessDone) {
				log.Debug().Err(kerr).Str("pane_id", h.id).Msg("kill shell")
			}
		}
		err = h.ptmx.Close()
	})
	return err
}

func (h *Host) readLoop() {
	buf := make([]byte, readBufferSize)
	for {
		n, err := h.ptmx.Read(buf)
		if n > 0 {
			h.screen.write(buf[:n])
			h.modes.feed(buf[:n])
			h.notify()
		}
		if err != nil {
			if !endOfStream(err) {
				log.Debug().Err(err).Str("pane_id", h.id).Msg("pty read ended")
			}
			return
		}
	}
}

// endOfStream reports whether a PTY read error just means the child is
// gone. Linux returns EIO on the master once the slave side is closed.
func endOfStream(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) || errors.Is(err, syscall.EIO)
}

func (h *Host) notify() {
	if h.events == nil || !h.pending.CompareAndSwap(false, true) {
		return
	}
	select {
	case h.events <- OutputMsg{Pane: h.index}:
	case <-h.done:
	}
}

func (h *Host) wait() {
	err := h.cmd.Wait()
	h.exited.Store(true)

	ev := log.Info().Str("pane_id", h.id).Int("pane", h.index)
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msg("shell exited")

	if h.events == nil {
		return
	}
	select {
	case h.events <- ExitedMsg{Pane: h.index, Err: err}:
	case <-h.done:
	}
}
