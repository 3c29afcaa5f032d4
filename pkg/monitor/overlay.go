package monitor

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// overlayAt composites overlay on top of base with its top-left corner at
// (x, y). Both are treated as line grids of the given width and height; the
// result always has at least height lines.
func overlayAt(base, overlay string, x, y, width, height int) string {
	baseLines := splitLines(base)
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}
	overlayLines := splitLines(overlay)
	overlayWidth := maxLineWidth(overlayLines)

	for i, line := range overlayLines {
		row := y + i
		if row < 0 || row >= len(baseLines) || row >= height {
			continue
		}
		target := padRight(baseLines[row], width)
		left := ansi.Truncate(target, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}

		line = padRight(line, overlayWidth)
		pos := x + ansi.StringWidth(line)
		right := ""
		if pos < width {
			right = ansi.TruncateLeft(target, pos, "")
		}
		baseLines[row] = left + line + right
	}
	return strings.Join(baseLines, "\n")
}

func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

func maxLineWidth(lines []string) int {
	m := 0
	for _, line := range lines {
		m = max(m, ansi.StringWidth(line))
	}
	return m
}

// padRight pads s with spaces to width cells.
func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if width <= 0 || w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
