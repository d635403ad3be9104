package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

// Series is a named data series for plotting.
type Series struct {
	Name   string
	Values []float64
}

// PlotOptions sizes a plot. Zero values pick defaults.
type PlotOptions struct {
	Width  int
	Height int
	// Color forces ANSI colors even when w is not a terminal.
	Color bool
}

const (
	defaultPlotHeight   = 8
	minPlotWidth        = 10
	axisLabelWidth      = 6
	axisSeparator       = " ┤"
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var seriesColors = []string{
	"\x1b[36m", // cyan
	"\x1b[33m", // yellow
	"\x1b[35m", // magenta
	"\x1b[32m", // green
}

// PlotSeries renders a braille line chart. All series share one y scale.
func PlotSeries(w io.Writer, title string, series []Series, opts PlotOptions) error {
	kept := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) > 0 {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	height := opts.Height
	if height <= 0 {
		height = defaultPlotHeight
	}
	width := opts.Width
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range kept {
		for _, v := range s.Values {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if hi-lo < 1e-9 {
		lo--
		hi++
	}

	c := newCanvas(width, height)
	for si, s := range kept {
		prevX, prevY := -1, -1
		for i, v := range resample(s.Values, width) {
			x := i * 2
			y := int(math.Round((hi - v) / (hi - lo) * float64(height*4-1)))
			if prevX < 0 {
				c.dot(x, y, si)
			} else {
				c.line(prevX, prevY, x, y, si)
			}
			prevX, prevY = x, y
		}
	}

	useColor := shouldUseColor(w, opts.Color)
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for y := 0; y < height; y++ {
		label := ""
		switch y {
		case 0:
			label = fmt.Sprintf("%.2f", hi)
		case height - 1:
			label = fmt.Sprintf("%.2f", lo)
		}
		if _, err := fmt.Fprintf(w, "%*s%s%s\n", axisLabelWidth, label, axisSeparator, c.row(y, useColor)); err != nil {
			return err
		}
	}
	legend := make([]string, len(kept))
	for i, s := range kept {
		legend[i] = fmt.Sprintf("%c %s", brailleFromMask(0xff), s.Name)
		if useColor {
			legend[i] = seriesColors[i%len(seriesColors)] + legend[i] + colorReset
		}
	}
	_, err := fmt.Fprintf(w, "%*s  %s\n\n", axisLabelWidth, "", strings.Join(legend, "  "))
	return err
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	plotWidth := totalWidth - axisLabelWidth - displayWidth(axisSeparator)
	if plotWidth < minPlotWidth {
		return minPlotWidth
	}
	return plotWidth
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// resample stretches or averages values to exactly n points.
func resample(values []float64, n int) []float64 {
	out := make([]float64, n)
	switch {
	case len(values) == n:
		copy(out, values)
	case len(values) > n:
		for i := range out {
			start := i * len(values) / n
			end := (i + 1) * len(values) / n
			if end <= start {
				end = start + 1
			}
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case len(values) == 1 || n == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		for i := range out {
			pos := float64(i) * float64(len(values)-1) / float64(n-1)
			idx := int(pos)
			if idx >= len(values)-1 {
				out[i] = values[len(values)-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

// canvas is a grid of braille cells, each holding 2x4 dots.
type canvas struct {
	cells [][]uint8
	owner [][]int
}

func newCanvas(width, height int) *canvas {
	c := &canvas{cells: make([][]uint8, height), owner: make([][]int, height)}
	for y := range c.cells {
		c.cells[y] = make([]uint8, width)
		c.owner[y] = make([]int, width)
		for x := range c.owner[y] {
			c.owner[y][x] = -1
		}
	}
	return c
}

var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

func (c *canvas) dot(x, y, series int) {
	cy, cx := y/4, x/2
	if x < 0 || y < 0 || cy >= len(c.cells) || cx >= len(c.cells[cy]) {
		return
	}
	c.cells[cy][cx] |= dotBits[x%2][y%4]
	if c.owner[cy][cx] < 0 {
		c.owner[cy][cx] = series
	}
}

// line draws with Bresenham's algorithm.
func (c *canvas) line(x0, y0, x1, y1, series int) {
	dx, sx := abs(x1-x0), 1
	if x0 > x1 {
		sx = -1
	}
	dy, sy := -abs(y1-y0), 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.dot(x0, y0, series)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *canvas) row(y int, color bool) string {
	var b strings.Builder
	for x, mask := range c.cells[y] {
		owner := c.owner[y][x]
		if color && owner >= 0 {
			b.WriteString(seriesColors[owner%len(seriesColors)])
			b.WriteRune(brailleFromMask(mask))
			b.WriteString(colorReset)
			continue
		}
		b.WriteRune(brailleFromMask(mask))
	}
	return b.String()
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
