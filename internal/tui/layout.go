package tui

import "image"

// headerRows is the height of the title strip above each pane.
const headerRows = 1

// layout holds the computed rectangles for every UI region.
type layout struct {
	headers  []image.Rectangle
	panes    []image.Rectangle
	dividers []image.Rectangle
}

// generateLayout splits the window into n equal columns separated by
// one-cell dividers. Leftover columns go to the leftmost panes.
func generateLayout(width, height, n int) layout {
	var ly layout
	if n <= 0 {
		return ly
	}
	width, height = max(width, 0), max(height, headerRows)
	avail := max(width-(n-1), 0)
	base, extra := avail/n, avail%n

	x := 0
	for i := range n {
		w := base
		if i < extra {
			w++
		}
		ly.headers = append(ly.headers, image.Rect(x, 0, x+w, headerRows))
		ly.panes = append(ly.panes, image.Rect(x, headerRows, x+w, height))
		x += w
		if i < n-1 {
			ly.dividers = append(ly.dividers, image.Rect(x, 0, x+1, height))
			x++
		}
	}
	return ly
}
