package tui

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/xonecas/xtermng/internal/router"
	"github.com/xonecas/xtermng/internal/terminal"
	"github.com/xonecas/xtermng/internal/theme"
)

type fakePane struct {
	name      string
	fill      string
	zooms     []float64
	focused   bool
	width     int
	height    int
	written   []byte
	pasted    []string
	refreshes int
	writeErr  error
}

func (f *fakePane) SetZoom(level float64) { f.zooms = append(f.zooms, level) }
func (f *fakePane) Focus()                { f.focused = true }
func (f *fakePane) Blur()                 { f.focused = false }
func (f *fakePane) Resize(w, h int)       { f.width, f.height = w, h }
func (f *fakePane) Title() string         { return f.name }
func (f *fakePane) Refresh()              { f.refreshes++ }
func (f *fakePane) Close() error          { return nil }

func (f *fakePane) Write(p []byte) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.written = append(f.written, p...)
	return nil
}

func (f *fakePane) Paste(text string) error {
	f.pasted = append(f.pasted, text)
	return nil
}

func (f *fakePane) Render() string {
	lines := make([]string, f.height)
	for i := range lines {
		lines[i] = strings.Repeat(f.fill, f.width)
	}
	return strings.Join(lines, "\n")
}

func (f *fakePane) zoom() float64 {
	if len(f.zooms) == 0 {
		return 0
	}
	return f.zooms[len(f.zooms)-1]
}

func newTestModel(t *testing.T) (Model, *fakePane, *fakePane) {
	t.Helper()
	rt, err := router.New(2, 0.1, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	a := &fakePane{name: "left", fill: "a"}
	b := &fakePane{name: "right", fill: "b"}
	m, err := New([]Pane{a, b}, Options{Palette: theme.DefaultPalette(), Router: rt})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m, a, b
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestNewFocusesFirstPane(t *testing.T) {
	m, a, b := newTestModel(t)
	if !a.focused || b.focused {
		t.Fatalf("focus = %v/%v, want first pane only", a.focused, b.focused)
	}
	if a.zoom() != 1.0 || b.zoom() != 1.0 {
		t.Fatalf("initial zoom = %v/%v", a.zoom(), b.zoom())
	}
	if s := m.State(); s.Zoom != 1.0 || s.Focused != 0 {
		t.Fatalf("state = %+v", s)
	}
	if m.Init() != nil {
		t.Fatal("Init without events should return nil")
	}
}

func TestNewRejectsPaneCountMismatch(t *testing.T) {
	rt, err := router.New(2, 0.1, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New([]Pane{&fakePane{}}, Options{Router: rt}); err == nil {
		t.Fatal("expected error for one pane with a two-pane router")
	}
	if _, err := New(nil, Options{}); err == nil {
		t.Fatal("expected error without router")
	}
}

func TestZoomAndFocusScenario(t *testing.T) {
	m, a, b := newTestModel(t)
	zoomIn := tea.KeyPressMsg{Code: '=', ShiftedCode: '+', Mod: tea.ModCtrl | tea.ModShift}

	for range 3 {
		m, _ = send(t, m, zoomIn)
	}
	if a.zoom() != 1.3 || b.zoom() != 1.3 {
		t.Fatalf("zoom after three steps = %v/%v, want 1.3", a.zoom(), b.zoom())
	}

	m, _ = send(t, m, tea.KeyPressMsg{Code: tea.KeyRight, Mod: tea.ModCtrl | tea.ModShift})
	if m.State().Focused != 1 || a.focused || !b.focused {
		t.Fatalf("focus after ctrl+shift+right = %d (%v/%v)", m.State().Focused, a.focused, b.focused)
	}

	m, _ = send(t, m, tea.KeyPressMsg{Code: '0', Mod: tea.ModCtrl})
	if a.zoom() != 1.0 || b.zoom() != 1.0 {
		t.Fatalf("zoom after reset = %v/%v, want 1.0", a.zoom(), b.zoom())
	}
	if m.State().Focused != 1 {
		t.Fatalf("reset moved focus to %d", m.State().Focused)
	}
	if len(a.written) != 0 || len(b.written) != 0 {
		t.Fatalf("chords leaked to panes: %q %q", a.written, b.written)
	}
}

func TestUnhandledKeysGoToFocusedPane(t *testing.T) {
	m, a, b := newTestModel(t)
	m, _ = send(t, m, tea.KeyPressMsg{Code: 'l', Text: "l"})
	m, _ = send(t, m, tea.KeyPressMsg{Code: 's', Text: "s"})
	m, _ = send(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if string(a.written) != "ls\r" {
		t.Fatalf("focused pane got %q, want %q", a.written, "ls\r")
	}
	if len(b.written) != 0 {
		t.Fatalf("unfocused pane got %q", b.written)
	}

	m, _ = send(t, m, tea.KeyPressMsg{Code: 'w', Mod: tea.ModCtrl | tea.ModShift})
	m, _ = send(t, m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if string(b.written) != "\x03" {
		t.Fatalf("second pane got %q, want ctrl+c byte", b.written)
	}
	if m.State().Zoom != 1.0 {
		t.Fatalf("zoom changed to %v", m.State().Zoom)
	}
}

func TestShiftedCtrlKeysReachShell(t *testing.T) {
	m, a, b := newTestModel(t)
	m, _ = send(t, m, tea.KeyPressMsg{Code: '-', ShiftedCode: '_', Mod: tea.ModCtrl | tea.ModShift})
	m, _ = send(t, m, tea.KeyPressMsg{Code: '0', ShiftedCode: ')', Mod: tea.ModCtrl | tea.ModShift})
	if string(a.written) != "\x1f)" {
		t.Fatalf("focused pane got %q, want ctrl+_ then )", a.written)
	}
	if m.State().Zoom != 1.0 || len(b.zooms) != 1 {
		t.Fatalf("shifted keys changed zoom: state %v, pane zooms %v", m.State().Zoom, b.zooms)
	}
}

func TestPasteGoesToFocusedPane(t *testing.T) {
	m, a, _ := newTestModel(t)
	m, _ = send(t, m, tea.PasteMsg{Content: "echo hi\necho there"})
	_, _ = send(t, m, tea.PasteMsg{})
	if len(a.pasted) != 1 || a.pasted[0] != "echo hi\necho there" {
		t.Fatalf("pasted = %q", a.pasted)
	}
	if len(a.written) != 0 {
		t.Fatalf("paste went through Write: %q", a.written)
	}
}

func TestWriteErrorIsNotFatal(t *testing.T) {
	m, a, _ := newTestModel(t)
	a.writeErr = errors.New("gone")
	_, cmd := send(t, m, tea.KeyPressMsg{Code: 'x', Text: "x"})
	if cmd != nil {
		t.Fatal("write failure should not produce a command")
	}
}

func TestOutputRefreshesPane(t *testing.T) {
	events := make(chan tea.Msg, 1)
	rt, err := router.New(2, 0.1, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	a, b := &fakePane{}, &fakePane{}
	m, err := New([]Pane{a, b}, Options{Palette: theme.DefaultPalette(), Router: rt, Events: events})
	if err != nil {
		t.Fatal(err)
	}

	m, cmd := send(t, m, terminal.OutputMsg{Pane: 1})
	if b.refreshes != 1 || a.refreshes != 0 {
		t.Fatalf("refreshes = %d/%d", a.refreshes, b.refreshes)
	}
	if cmd == nil {
		t.Fatal("output should re-arm the event wait")
	}
	events <- terminal.OutputMsg{Pane: 0}
	if got := cmd(); got != (terminal.OutputMsg{Pane: 0}) {
		t.Fatalf("waiter returned %#v", got)
	}

	_, _ = send(t, m, terminal.OutputMsg{Pane: 7})
}

func TestExitQuits(t *testing.T) {
	m, _, _ := newTestModel(t)
	_, cmd := send(t, m, terminal.ExitedMsg{Pane: 1})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("exit should quit the program")
	}
}

func TestResizeDistributesWidth(t *testing.T) {
	m, a, b := newTestModel(t)
	_, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	if a.width != 40 || a.height != 23 {
		t.Errorf("left pane = %dx%d, want 40x23", a.width, a.height)
	}
	if b.width != 39 || b.height != 23 {
		t.Errorf("right pane = %dx%d, want 39x23", b.width, b.height)
	}
}

func TestViewLayout(t *testing.T) {
	m, _, _ := newTestModel(t)
	if m.renderContent() != "" {
		t.Fatal("view before first resize should be empty")
	}
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 21, Height: 4})

	v := m.View()
	if !v.AltScreen {
		t.Error("view should use the alternate screen")
	}
	if v.WindowTitle != "XtermNG" {
		t.Errorf("window title = %q", v.WindowTitle)
	}

	rows := strings.Split(ansi.Strip(m.renderContent()), "\n")
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	for i, r := range rows {
		if w := ansi.StringWidth(r); w != 21 {
			t.Errorf("row %d width = %d, want 21: %q", i, w, r)
		}
	}
	if want := " 1 l 100% │ 2 r 100% "; rows[0] != want {
		t.Errorf("header = %q, want %q", rows[0], want)
	}
	for _, r := range rows[1:] {
		if r != "aaaaaaaaaa│bbbbbbbbbb" {
			t.Errorf("body row = %q", r)
		}
	}
}

func TestHeaderTracksZoomAndFocus(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 41, Height: 3})
	m, _ = send(t, m, tea.KeyPressMsg{Code: '=', Mod: tea.ModCtrl})
	m, _ = send(t, m, tea.KeyPressMsg{Code: tea.KeyLeft, Mod: tea.ModCtrl | tea.ModShift})

	header := strings.Split(ansi.Strip(m.renderContent()), "\n")[0]
	if strings.Count(header, "110%") != 2 {
		t.Fatalf("header %q should show 110%% on both panes", header)
	}
	if m.State().Focused != 1 {
		t.Fatalf("focus = %d", m.State().Focused)
	}
}
