package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

// Curve is a named series of percentages in [0, 100].
type Curve struct {
	Name   string
	Values []float64
}

const (
	defaultPlotHeight     = 8
	minPlotWidth          = 10
	axisSeparator         = " │ "
	colorReset            = "\x1b[0m"
	fallbackTerminalWidth = 80
)

var axisLabels = [...]string{"100%", " 50%", "  0%"}

var curveColors = []string{
	"\x1b[35m",
	"\x1b[36m",
	"\x1b[33m",
	"\x1b[32m",
}

// PlotCurves draws curves on a braille canvas against a fixed 0-100% axis.
// A width of zero fits the plot to the terminal.
func PlotCurves(w io.Writer, title string, curves []Curve, width, height int, color bool) error {
	var drawn []Curve
	for _, c := range curves {
		if len(c.Values) > 0 {
			drawn = append(drawn, c)
		}
	}
	if len(drawn) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(TerminalWidth())
	}
	width = max(width, minPlotWidth)

	layers := make([][][]uint8, len(drawn))
	for i, c := range drawn {
		layers[i] = drawCurve(c.Values, width, height)
	}

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for y := 0; y < height; y++ {
		var row strings.Builder
		row.WriteString(axisLabel(y, height))
		row.WriteString(axisSeparator)
		for x := 0; x < width; x++ {
			var mask uint8
			owner := -1
			for i, layer := range layers {
				if layer[y][x] == 0 {
					continue
				}
				if owner < 0 {
					owner = i
				}
				mask |= layer[y][x]
			}
			ch := brailleRune(mask)
			if color && owner >= 0 {
				row.WriteString(curveColors[owner%len(curveColors)])
				row.WriteRune(ch)
				row.WriteString(colorReset)
				continue
			}
			row.WriteRune(ch)
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, legend(drawn, color))
	return err
}

// PlotWidthFor returns the canvas width that fits totalWidth columns.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	return max(totalWidth-DisplayWidth(axisLabels[0])-DisplayWidth(axisSeparator), minPlotWidth)
}

// TerminalWidth reports the width of stdout, or a fallback when it is not a
// terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackTerminalWidth
	}
	return width
}

// UseColor reports whether ANSI colors should be written to w.
func UseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func axisLabel(y, height int) string {
	switch {
	case y == 0:
		return axisLabels[0]
	case y == height-1:
		return axisLabels[2]
	case height > 2 && y == height/2:
		return axisLabels[1]
	default:
		return strings.Repeat(" ", DisplayWidth(axisLabels[0]))
	}
}

func legend(curves []Curve, color bool) string {
	parts := make([]string, 0, len(curves))
	for i, c := range curves {
		label := fmt.Sprintf("%c %s", brailleRune(0xff), c.Name)
		if color {
			label = curveColors[i%len(curveColors)] + label + colorReset
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}

// drawCurve rasterizes values onto a width x height grid of braille cells.
// Each cell holds 2x4 dots.
func drawCurve(values []float64, width, height int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	dotsX, dotsY := width*2, height*4
	points := resample(values, dotsX)
	prevX, prevY := -1, -1
	for x, v := range points {
		y := percentToDot(v, dotsY)
		if prevX < 0 {
			setDot(cells, x, y)
		} else {
			line(prevX, prevY, x, y, func(px, py int) { setDot(cells, px, py) })
		}
		prevX, prevY = x, y
	}
	return cells
}

func percentToDot(v float64, dots int) int {
	v = math.Max(0, math.Min(100, v))
	return int(math.Round((1 - v/100) * float64(dots-1)))
}

// resample stretches or shrinks values to n points by linear interpolation.
func resample(values []float64, n int) []float64 {
	out := make([]float64, n)
	if len(values) == 1 || n == 1 {
		for i := range out {
			out[i] = values[0]
		}
		return out
	}
	last := len(values) - 1
	for i := range out {
		pos := float64(i) * float64(last) / float64(n-1)
		idx := int(pos)
		if idx >= last {
			out[i] = values[last]
			continue
		}
		frac := pos - float64(idx)
		out[i] = values[idx]*(1-frac) + values[idx+1]*frac
	}
	return out
}

// line walks the Bresenham line from (x0,y0) to (x1,y1).
func line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func setDot(cells [][]uint8, x, y int) {
	cy, cx := y/4, x/2
	if x < 0 || y < 0 || cy >= len(cells) || cx >= len(cells[cy]) {
		return
	}
	cells[cy][cx] |= dotBits[x%2][y%4]
}

// dotBits maps a dot position inside a cell to its braille bit.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

func brailleRune(mask uint8) rune {
	return rune(0x2800 + int(mask))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
