package render

import "github.com/gdamore/tcell/v2"

// Truncate shortens s to width cells, marking the cut with an ellipsis when
// there is room for one.
func Truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 0 {
		return ""
	}
	if width > 3 {
		return string(runes[:width-3]) + "..."
	}
	return string(runes[:width])
}

// DrawText writes s at (x, y), clipped to width cells.
func DrawText(screen tcell.Screen, x, y, width int, s string, style tcell.Style) {
	for i, ch := range []rune(Truncate(s, width)) {
		screen.SetContent(x+i, y, ch, nil, style)
	}
}

// HLine draws a horizontal rule from x0 up to, not including, x1.
func HLine(screen tcell.Screen, x0, x1, y int, style tcell.Style) {
	for x := x0; x < x1; x++ {
		screen.SetContent(x, y, '─', nil, style)
	}
}

// VLine draws a vertical rule from y0 up to, not including, y1.
func VLine(screen tcell.Screen, x, y0, y1 int, style tcell.Style) {
	for y := y0; y < y1; y++ {
		screen.SetContent(x, y, '│', nil, style)
	}
}
