package terminal

import (
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/xonecas/xtermng/internal/shell"
)

func TestCreateRejectsEmptyArgv(t *testing.T) {
	_, err := Create(Options{Index: 1, Dir: t.TempDir()})
	var se *SpawnError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *SpawnError", err)
	}
	if se.Pane != 1 || !errors.Is(err, shell.ErrEmpty) {
		t.Fatalf("SpawnError = %+v", se)
	}
}

func TestCreateMissingShell(t *testing.T) {
	argv := []string{"/nonexistent/xtermng-test-shell"}
	_, err := Create(Options{Index: 0, Argv: argv, Dir: t.TempDir(), Width: 20, Height: 5, Zoom: 1})
	var se *SpawnError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *SpawnError", err)
	}
	if se.Argv[0] != argv[0] {
		t.Errorf("SpawnError.Argv = %q", se.Argv)
	}
	if !strings.Contains(se.Error(), "pane 0") {
		t.Errorf("Error() = %q", se.Error())
	}
}

func TestHostLifecycle(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	events := make(chan tea.Msg, 16)
	h, err := Create(Options{
		Index:  1,
		Argv:   []string{"sh", "-c", "printf ready; read line; exit 3"},
		Dir:    t.TempDir(),
		Width:  20,
		Height: 4,
		Zoom:   1,
		Events: events,
	})
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer h.Close()

	if h.Pid() <= 0 {
		t.Fatalf("pid = %d", h.Pid())
	}
	if h.Title() != "sh" {
		t.Errorf("Title = %q, want sh", h.Title())
	}

	waitFor(t, func() bool { return strings.Contains(ansi.Strip(h.Render()), "ready") })

	h.SetZoom(2)
	if h.Zoom() != 2 {
		t.Errorf("Zoom = %v, want 2", h.Zoom())
	}
	h.Focus()
	if !h.Focused() {
		t.Error("Focus did not mark the host")
	}

	if err := h.Write([]byte("\r")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case msg := <-events:
			switch msg := msg.(type) {
			case OutputMsg:
				if msg.Pane != 1 {
					t.Fatalf("OutputMsg pane = %d", msg.Pane)
				}
				h.Refresh()
			case ExitedMsg:
				if msg.Pane != 1 {
					t.Fatalf("ExitedMsg pane = %d", msg.Pane)
				}
				var exitErr *exec.ExitError
				if !errors.As(msg.Err, &exitErr) || exitErr.ExitCode() != 3 {
					t.Fatalf("ExitedMsg.Err = %v, want exit status 3", msg.Err)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for ExitedMsg")
		}
	}
}

func TestHostExportsPaneID(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	h, err := Create(Options{
		Argv:   []string{"sh", "-c", `printf "id=%s;" "$` + PaneIDEnv + `"; read line`},
		Dir:    t.TempDir(),
		Width:  60,
		Height: 3,
		Zoom:   1,
	})
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer h.Close()

	want := "id=" + h.ID() + ";"
	waitFor(t, func() bool { return strings.Contains(ansi.Strip(h.Render()), want) })
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
