package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	tileGap         = 1
	defaultGridCols = 10
)

// tileWidth is the rendered width of a tile holding labels up to labelWidth
// cells.
func tileWidth(labelWidth int) int {
	return labelWidth + 2
}

// labelWidth returns the widest label in cells.
func labelWidth(labels []string) int {
	w := 1
	for _, l := range labels {
		w = max(w, runewidth.StringWidth(l))
	}
	return w
}

// center pads label to width cells, keeping it in the middle.
func center(label string, width int) string {
	pad := width - runewidth.StringWidth(label)
	if pad <= 0 {
		return label
	}
	left := pad / 2
	return strings.Repeat(" ", left) + label + strings.Repeat(" ", pad-left)
}

func renderTile(label string, width int, style lipgloss.Style) string {
	return style.Render(" " + center(label, width) + " ")
}

// gridColumns returns how many tiles of tileW cells fit into width.
func gridColumns(width, tileW int) int {
	if width <= 0 {
		return defaultGridCols
	}
	return max((width+tileGap)/(tileW+tileGap), 1)
}

// renderGrid lays rendered tiles out in rows of cols.
func renderGrid(tiles []string, cols int) string {
	if cols <= 0 {
		cols = 1
	}
	gap := strings.Repeat(" ", tileGap)
	var b strings.Builder
	for i := 0; i < len(tiles); i += cols {
		end := min(i+cols, len(tiles))
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Join(tiles[i:end], gap))
	}
	return b.String()
}

// moveCursor shifts cursor by delta inside [0, n), clamping at the ends.
func moveCursor(cursor, delta, n int) int {
	if n == 0 {
		return 0
	}
	return max(0, min(n-1, cursor+delta))
}
