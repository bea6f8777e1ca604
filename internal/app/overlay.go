package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// stamp draws box over base with its top-left corner at column x, row y.
// Cells of base left and right of the box survive, ANSI styling included.
// base is padded to minRows lines first so a box on a short screen is not
// cut off.
func stamp(base, box string, x, y, minRows int) string {
	rows := strings.Split(base, "\n")
	for len(rows) < minRows {
		rows = append(rows, "")
	}
	boxWidth := lipgloss.Width(box)

	for i, line := range strings.Split(box, "\n") {
		row := y + i
		if row >= len(rows) {
			break
		}
		left := ansi.Truncate(rows[row], x, "")
		if gap := x - lipgloss.Width(left); gap > 0 {
			left += strings.Repeat(" ", gap)
		}
		right := ansi.TruncateLeft(rows[row], x+boxWidth, "")
		rows[row] = left + line + right
	}
	return strings.Join(rows, "\n")
}

// centerOver stamps box in the middle of a width x height screen.
func centerOver(base, box string, width, height int) string {
	x := max((width-lipgloss.Width(box))/2, 0)
	y := max((height-lipgloss.Height(box))/2, 0)
	return stamp(base, box, x, y, height)
}
