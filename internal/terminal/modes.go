package terminal

import (
	"bytes"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/x/ansi"
)

// modeTracker follows the private modes the emulator does not expose.
// Only bracketed paste (DEC mode 2004) matters for now. feed is called from
// the read goroutine alone; the flag is read from the event loop.
type modeTracker struct {
	tail    []byte
	bracket atomic.Bool
}

var (
	setBracketedPaste   = []byte(ansi.SetModeBracketedPaste)
	resetBracketedPaste = []byte(ansi.ResetModeBracketedPaste)
)

// feed scans output for mode changes. The last len(seq)-1 bytes are kept so
// a sequence split across two reads is still seen.
func (t *modeTracker) feed(p []byte) {
	data := append(t.tail, p...)
	on := bytes.LastIndex(data, setBracketedPaste)
	off := bytes.LastIndex(data, resetBracketedPaste)
	switch {
	case on > off:
		t.bracket.Store(true)
	case off > on:
		t.bracket.Store(false)
	}
	keep := min(len(data), len(setBracketedPaste)-1)
	t.tail = append(t.tail[:0], data[len(data)-keep:]...)
}

func (t *modeTracker) bracketedPaste() bool { return t.bracket.Load() }

// pasteBytes encodes pasted text. In bracketed mode any end marker inside
// the text is dropped so the paste cannot terminate itself early.
func pasteBytes(text string, bracketed bool) []byte {
	if !bracketed {
		return []byte(text)
	}
	text = strings.ReplaceAll(text, ansi.BracketedPasteEnd, "")
	return []byte(ansi.BracketedPasteStart + text + ansi.BracketedPasteEnd)
}
