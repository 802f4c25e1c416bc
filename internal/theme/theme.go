// Package theme derives UI chrome colors from a Chroma style so the pane
// headers and dividers match the user's preferred color scheme.
package theme

import (
	"math"
	"slices"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// Palette holds UI chrome colors derived deterministically from a Chroma theme.
// The grayscale ramp is a linear interpolation from bg to fg; the accent is the
// most saturated token color in the palette.
type Palette struct {
	Bg     string // Theme background
	Fg     string // Theme foreground
	Border string // 10% bg→fg, header background
	Dim    string // 25% bg→fg, dividers
	Muted  string // 45% bg→fg, unfocused header text
	Accent string // Most saturated token color, focused header
}

// ThemePalette derives a full UI color palette from a Chroma theme name.
// Same theme, same output. Unknown themes get the built-in palette.
func ThemePalette(name string) Palette {
	sty, ok := styles.Registry[name]
	if !ok || sty == nil {
		return DefaultPalette()
	}
	entry := sty.Get(chroma.Background)
	bg := chroma.NewColour(0x00, 0x00, 0x00)
	fg := chroma.NewColour(0xc8, 0xc8, 0xc8)
	if entry.Background.IsSet() {
		bg = entry.Background
	}
	if entry.Colour.IsSet() {
		fg = entry.Colour
	}

	return Palette{
		Bg:     bg.String(),
		Fg:     fg.String(),
		Border: mix(bg, fg, 0.10).String(),
		Dim:    mix(bg, fg, 0.25).String(),
		Muted:  mix(bg, fg, 0.45).String(),
		Accent: pickAccent(sty, fg).String(),
	}
}

// DefaultPalette is used when the configured theme does not exist.
func DefaultPalette() Palette {
	return Palette{
		Bg: "#000000", Fg: "#c8c8c8",
		Border: "#141414", Dim: "#323232", Muted: "#5a5a5a",
		Accent: "#00dfff",
	}
}

// pickAccent returns the token foreground with the highest HSV saturation.
// Types are visited in token order so ties resolve the same way every run.
func pickAccent(sty *chroma.Style, fallback chroma.Colour) chroma.Colour {
	types := sty.Types()
	slices.Sort(types)

	best, bestSat := fallback, 0.0
	for _, tt := range types {
		c := sty.Get(tt).Colour
		if !c.IsSet() {
			continue
		}
		if sat := saturation(c); sat > bestSat {
			best, bestSat = c, sat
		}
	}
	return best
}

func saturation(c chroma.Colour) float64 {
	hi := max(c.Red(), c.Green(), c.Blue())
	lo := min(c.Red(), c.Green(), c.Blue())
	if hi == 0 {
		return 0
	}
	return float64(hi-lo) / float64(hi)
}

// mix blends a toward b by t in [0, 1], channel by channel.
func mix(a, b chroma.Colour, t float64) chroma.Colour {
	ch := func(x, y uint8) uint8 {
		v := float64(x) + (float64(y)-float64(x))*t
		return uint8(math.Round(min(max(v, 0), 255)))
	}
	return chroma.NewColour(
		ch(a.Red(), b.Red()),
		ch(a.Green(), b.Green()),
		ch(a.Blue(), b.Blue()),
	)
}
