package terminal

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/hinshun/vt10x"
	"github.com/xonecas/xtermng/internal/constants"
)

// vt10x glyph mode bits.
const (
	modeReverse   int16 = 1 << 0
	modeUnderline int16 = 1 << 1
	modeBold      int16 = 1 << 2
	modeItalic    int16 = 1 << 4
)

// firstDefaultColor is where vt10x starts its DefaultFG/DefaultBG/DefaultCursor
// sentinels; anything at or above it means "no color set".
const firstDefaultColor = vt10x.DefaultFG

// screen is the emulator grid of one pane plus the zoom that maps pane
// cells to emulated cells.
type screen struct {
	vt     vt10x.Terminal
	width  int // pane area in host cells
	height int
	zoom   float64
}

func newScreen(width, height int, zoom float64, w io.Writer) *screen {
	if w == nil {
		w = io.Discard
	}
	s := &screen{width: max(width, 1), height: max(height, 1), zoom: zoom}
	cols, rows := s.grid()
	s.vt = vt10x.New(vt10x.WithSize(cols, rows), vt10x.WithWriter(w))
	return s
}

// gridSize maps a pane area to the emulated grid at the given zoom: a larger
// font scale fits fewer columns and rows.
func gridSize(width, height int, zoom float64) (cols, rows int) {
	if zoom <= 0 {
		zoom = constants.DefaultZoom
	}
	cols = clampGrid(int(math.Floor(float64(width)/zoom + 1e-9)))
	rows = clampGrid(int(math.Floor(float64(height)/zoom + 1e-9)))
	return cols, rows
}

func clampGrid(n int) int {
	return min(max(n, 1), constants.MaxGrid)
}

func (s *screen) grid() (cols, rows int) {
	return gridSize(s.width, s.height, s.zoom)
}

// setZoom changes the font scale. It reports the new grid and whether it
// differs from the previous one.
func (s *screen) setZoom(zoom float64) (cols, rows int, changed bool) {
	s.zoom = zoom
	return s.regrid()
}

// resize changes the pane area.
func (s *screen) resize(width, height int) (cols, rows int, changed bool) {
	s.width, s.height = max(width, 1), max(height, 1)
	return s.regrid()
}

func (s *screen) regrid() (cols, rows int, changed bool) {
	cols, rows = s.grid()
	s.vt.Lock()
	oldCols, oldRows := s.vt.Size()
	s.vt.Unlock()
	if cols == oldCols && rows == oldRows {
		return cols, rows, false
	}
	s.vt.Resize(cols, rows)
	return cols, rows, true
}

func (s *screen) write(p []byte) {
	_, _ = s.vt.Write(p)
}

func (s *screen) title() string {
	s.vt.Lock()
	defer s.vt.Unlock()
	return s.vt.Title()
}

// render paints the pane area: exactly height lines of width cells. When the
// emulated grid is larger than the pane the visible window follows the cursor.
func (s *screen) render(focused bool) string {
	s.vt.Lock()
	defer s.vt.Unlock()

	cols, rows := s.vt.Size()
	cur := s.vt.Cursor()
	showCursor := focused && s.vt.CursorVisible()
	top := viewportStart(cur.Y, rows, s.height)
	left := viewportStart(cur.X, cols, s.width)

	lines := make([]string, s.height)
	var b strings.Builder
	for y := range s.height {
		b.Reset()
		gy := top + y
		var active string
		for x := range s.width {
			gx := left + x
			if gy >= rows || gx >= cols {
				if active != "" {
					b.WriteString(ansi.ResetStyle)
					active = ""
				}
				b.WriteByte(' ')
				continue
			}
			cell := s.vt.Cell(gx, gy)
			isCursor := showCursor && gx == cur.X && gy == cur.Y
			if sgr := cellSGR(cell, isCursor); sgr != active {
				if sgr == "" {
					b.WriteString(ansi.ResetStyle)
				} else {
					b.WriteString(sgr)
				}
				active = sgr
			}
			b.WriteRune(printable(cell.Char))
		}
		if active != "" {
			b.WriteString(ansi.ResetStyle)
		}
		lines[y] = ansi.Truncate(b.String(), s.width, "")
	}
	return strings.Join(lines, "\n")
}

// viewportStart returns the first visible index of a total-long axis shown
// through a visible-long window that must contain pos.
func viewportStart(pos, total, visible int) int {
	if total <= visible {
		return 0
	}
	start := pos - visible + 1
	return min(max(start, 0), total-visible)
}

func printable(r rune) rune {
	if r < ' ' || r == 0x7f {
		return ' '
	}
	return r
}

// cellSGR returns the full SGR sequence for a glyph, or "" for default style.
func cellSGR(g vt10x.Glyph, cursor bool) string {
	var params []string
	if g.Mode&modeBold != 0 {
		params = append(params, "1")
	}
	if g.Mode&modeItalic != 0 {
		params = append(params, "3")
	}
	if g.Mode&modeUnderline != 0 {
		params = append(params, "4")
	}
	if (g.Mode&modeReverse != 0) != cursor {
		params = append(params, "7")
	}
	params = appendColor(params, g.FG, 30, 90, 38)
	params = appendColor(params, g.BG, 40, 100, 48)
	if len(params) == 0 {
		return ""
	}
	return "\x1b[0;" + strings.Join(params, ";") + "m"
}

// appendColor encodes a vt10x color: 0-15 as the basic/bright SGR codes,
// 16-255 as the 256-color palette, larger values as packed 24-bit RGB.
func appendColor(params []string, c vt10x.Color, base, bright, extended int) []string {
	switch {
	case c >= firstDefaultColor:
		return params
	case c.ANSI():
		if c < 8 {
			return append(params, strconv.Itoa(base+int(c)))
		}
		return append(params, strconv.Itoa(bright+int(c)-8))
	case c > 255:
		r, g, b := (c>>16)&0xff, (c>>8)&0xff, c&0xff
		return append(params, strconv.Itoa(extended), "2",
			strconv.Itoa(int(r)), strconv.Itoa(int(g)), strconv.Itoa(int(b)))
	default:
		return append(params, strconv.Itoa(extended), "5", strconv.Itoa(int(c)))
	}
}
