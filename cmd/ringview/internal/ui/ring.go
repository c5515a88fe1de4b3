package ui

import (
	"math"
	"strings"

	"github.com/go-drift/ringview/pkg/progress"
	"github.com/go-drift/ringview/pkg/raster"
)

// ringCells is the number of cells the circle is unrolled into.
const ringCells = 36

type cell int

const (
	cellRim cell = iota
	cellBar
	cellSpinner
)

// unroll maps f onto ringCells cells of 10° each, starting at the frame's
// start angle and running clockwise.
func unroll(f progress.Frame) []cell {
	cells := make([]cell, ringCells)
	mode := f.Mode()
	barStart, barSweep := raster.BarArc(f)
	spinStart, spinSweep := raster.SpinnerArc(f)
	step := 360.0 / ringCells

	for i := range cells {
		a := f.StartAngle + (float64(i)+0.5)*step
		if (mode == progress.DrawSpinner || mode == progress.DrawSpinnerAndBar) && inArc(a, spinStart, spinSweep) {
			cells[i] = cellSpinner
			continue
		}
		if (mode == progress.DrawBar || mode == progress.DrawSpinnerAndBar) && inArc(a, barStart, barSweep) {
			cells[i] = cellBar
		}
	}
	return cells
}

// inArc reports whether angle a lies on the clockwise arc from start.
func inArc(a, start, sweep float64) bool {
	if sweep >= 360 {
		return true
	}
	d := math.Mod(a-start, 360)
	if d < 0 {
		d += 360
	}
	return d < sweep
}

func renderRing(f progress.Frame) string {
	var b strings.Builder
	for _, c := range unroll(f) {
		switch c {
		case cellSpinner:
			b.WriteString(spinnerStyle.Render("●"))
		case cellBar:
			b.WriteString(barStyle.Render("━"))
		default:
			b.WriteString(rimStyle.Render("·"))
		}
	}
	return b.String()
}
