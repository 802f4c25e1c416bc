package terminal

import (
	"strconv"

	tea "charm.land/bubbletea/v2"
)

// csiKeys are keys sent as CSI sequences. final is the terminating byte; num,
// when non-zero, is the leading parameter of the "~" form.
var csiKeys = map[rune]struct {
	num   int
	final byte
}{
	tea.KeyUp:     {0, 'A'},
	tea.KeyDown:   {0, 'B'},
	tea.KeyRight:  {0, 'C'},
	tea.KeyLeft:   {0, 'D'},
	tea.KeyHome:   {0, 'H'},
	tea.KeyEnd:    {0, 'F'},
	tea.KeyInsert: {2, '~'},
	tea.KeyDelete: {3, '~'},
	tea.KeyPgUp:   {5, '~'},
	tea.KeyPgDown: {6, '~'},
	tea.KeyF1:     {0, 'P'},
	tea.KeyF2:     {0, 'Q'},
	tea.KeyF3:     {0, 'R'},
	tea.KeyF4:     {0, 'S'},
	tea.KeyF5:     {15, '~'},
	tea.KeyF6:     {17, '~'},
	tea.KeyF7:     {18, '~'},
	tea.KeyF8:     {19, '~'},
	tea.KeyF9:     {20, '~'},
	tea.KeyF10:    {21, '~'},
	tea.KeyF11:    {23, '~'},
	tea.KeyF12:    {24, '~'},
}

// KeyBytes translates a key press into the bytes an xterm sends to the
// child. It returns nil for keys with no encoding.
func KeyBytes(k tea.KeyPressMsg) []byte {
	ctrl := k.Mod.Contains(tea.ModCtrl)
	alt := k.Mod.Contains(tea.ModAlt)
	shift := k.Mod.Contains(tea.ModShift)

	if seq, ok := csiKeys[k.Code]; ok {
		return csiBytes(seq.num, seq.final, xtermModifier(shift, alt, ctrl))
	}

	var out []byte
	switch k.Code {
	case tea.KeyEnter:
		out = []byte{'\r'}
	case tea.KeyTab:
		if shift {
			return []byte("\x1b[Z")
		}
		out = []byte{'\t'}
	case tea.KeyBackspace:
		out = []byte{0x7f}
		if ctrl {
			out = []byte{0x08}
		}
	case tea.KeyEscape:
		out = []byte{0x1b}
	case tea.KeySpace:
		out = []byte{' '}
		if ctrl {
			out = []byte{0}
		}
	default:
		code := k.Code
		if shift && k.ShiftedCode != 0 {
			code = k.ShiftedCode
		}
		if ctrl {
			if b, ok := controlByte(code); ok {
				out = []byte{b}
				break
			}
		}
		switch {
		case k.Text != "":
			out = []byte(k.Text)
		case code > 0 && code < tea.KeyExtended:
			out = []byte(string(code))
		}
	}

	if alt && len(out) > 0 {
		out = append([]byte{0x1b}, out...)
	}
	return out
}

// controlByte maps Ctrl+<key> to its C0 control code.
func controlByte(r rune) (byte, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return byte(r-'a') + 1, true
	case r >= 'A' && r <= 'Z':
		return byte(r-'A') + 1, true
	case r == '@' || r == '2':
		return 0x00, true
	case r == '[' || r == '3':
		return 0x1b, true
	case r == '\\' || r == '4':
		return 0x1c, true
	case r == ']' || r == '5':
		return 0x1d, true
	case r == '^' || r == '6':
		return 0x1e, true
	case r == '_' || r == '/' || r == '7':
		return 0x1f, true
	case r == '?' || r == '8':
		return 0x7f, true
	}
	return 0, false
}

// xtermModifier returns the xterm modifier parameter (1 + shift + 2·alt +
// 4·ctrl), or 0 when no modifier is held.
func xtermModifier(shift, alt, ctrl bool) int {
	m := 0
	if shift {
		m |= 1
	}
	if alt {
		m |= 2
	}
	if ctrl {
		m |= 4
	}
	if m == 0 {
		return 0
	}
	return m + 1
}

// csiBytes builds CSI sequences: "ESC [ A", "ESC [ 1 ; 5 A", "ESC [ 5 ~",
// "ESC [ 5 ; 5 ~". F1-F4 without modifiers use the SS3 form "ESC O P".
func csiBytes(num int, final byte, mod int) []byte {
	if final >= 'P' && final <= 'S' && mod == 0 {
		return []byte{0x1b, 'O', final}
	}
	b := []byte{0x1b, '['}
	switch {
	case num != 0:
		b = strconv.AppendInt(b, int64(num), 10)
		if mod != 0 {
			b = append(b, ';')
			b = strconv.AppendInt(b, int64(mod), 10)
		}
	case mod != 0:
		b = append(b, '1', ';')
		b = strconv.AppendInt(b, int64(mod), 10)
	}
	return append(b, final)
}
