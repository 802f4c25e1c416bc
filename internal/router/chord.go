package router

import (
	"unicode"

	tea "charm.land/bubbletea/v2"
)

// Chord is a toolkit-neutral key press: the base key code plus the two
// modifiers the chord table cares about.
type Chord struct {
	Code  rune
	Ctrl  bool
	Shift bool
}

// ChordFromKey converts a Bubble Tea key press. With the kitty keyboard
// protocol a shifted key arrives with its base Code and the produced
// character in ShiftedCode ('=' and '+', '-' and '_'); the chord uses the
// produced character so Ctrl+Shift+'-' is Ctrl+'_', not Ctrl+'-'.
func ChordFromKey(k tea.KeyPressMsg) Chord {
	c := Chord{
		Code:  k.Code,
		Ctrl:  k.Mod.Contains(tea.ModCtrl),
		Shift: k.Mod.Contains(tea.ModShift),
	}
	if c.Shift && k.ShiftedCode != 0 {
		c.Code = k.ShiftedCode
	}
	return c
}

type action int

const (
	actionNone action = iota
	actionZoomIn
	actionZoomOut
	actionZoomReset
	actionToggleFocus
)

// action looks the chord up in the table. Ctrl is checked by the caller.
// '-' and '0' only match unshifted: shifted they produce '_' and ')' on
// the keyboard, which belong to the shell.
func (c Chord) action() action {
	switch c.Code {
	case '=', '+':
		return actionZoomIn
	case '-':
		if !c.Shift {
			return actionZoomOut
		}
	case '0':
		if !c.Shift {
			return actionZoomReset
		}
	case tea.KeyLeft, tea.KeyRight:
		if c.Shift {
			return actionToggleFocus
		}
	default:
		if c.Shift && unicode.ToLower(c.Code) == 'w' {
			return actionToggleFocus
		}
	}
	return actionNone
}
