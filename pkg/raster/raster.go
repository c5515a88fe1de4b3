// Package raster draws indicator frames into images.
//
// [Surface] is a ready-made progress.Surface for hosts without a UI toolkit:
// it counts redraw requests and renders a [progress.Frame] into an
// *image.RGBA using an anti-aliasing vector rasterizer.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/go-drift/ringview/pkg/errors"
	"github.com/go-drift/ringview/pkg/progress"
)

// Style controls the look of rendered frames.
type Style struct {
	// Size is the side of the square image in pixels.
	Size int
	// BarWidth and RimWidth are stroke widths in pixels.
	BarWidth float64
	RimWidth float64

	Background   color.Color
	RimColor     color.Color
	BarColor     color.Color
	SpinnerColor color.Color

	// ShowText draws the value as a percentage in the centre.
	ShowText  bool
	TextColor color.Color
}

// DefaultStyle returns a 128px blue-on-grey style.
func DefaultStyle() Style {
	return Style{
		Size:         128,
		BarWidth:     12,
		RimWidth:     12,
		Background:   color.White,
		RimColor:     color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff},
		BarColor:     color.RGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff},
		SpinnerColor: color.RGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff},
		ShowText:     true,
		TextColor:    color.Black,
	}
}

// Surface is a progress.Surface that renders frames on demand.
type Surface struct {
	// OnInvalidate, if set, runs on every Invalidate call on the indicator's
	// consumer goroutine. It must not block.
	OnInvalidate func()

	mu     sync.Mutex
	style  Style
	frames int
	raster *vector.Rasterizer
}

// NewSurface returns a surface with the given style. Unset colors take their
// DefaultStyle values. Sizes below 8 pixels are reported and raised to 8.
func NewSurface(style Style) *Surface {
	def := DefaultStyle()
	style.Background = orDefault(style.Background, def.Background)
	style.RimColor = orDefault(style.RimColor, def.RimColor)
	style.BarColor = orDefault(style.BarColor, def.BarColor)
	style.SpinnerColor = orDefault(style.SpinnerColor, def.SpinnerColor)
	style.TextColor = orDefault(style.TextColor, def.TextColor)
	if style.Size < minSize {
		errors.Report(&errors.Error{
			Op:   "raster.NewSurface",
			Kind: errors.KindSurface,
			Err:  fmt.Errorf("size %d below minimum %d", style.Size, minSize),
		})
		style.Size = minSize
	}
	return &Surface{
		style:  style,
		raster: vector.NewRasterizer(style.Size, style.Size),
	}
}

const minSize = 8

func orDefault(c, def color.Color) color.Color {
	if c == nil {
		return def
	}
	return c
}

// Invalidate records a redraw request.
func (s *Surface) Invalidate() {
	s.mu.Lock()
	s.frames++
	hook := s.OnInvalidate
	s.mu.Unlock()
	if hook != nil {
		hook()
	}
}

// Frames returns the number of redraw requests received.
func (s *Surface) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Style returns the surface style.
func (s *Surface) Style() Style {
	return s.style
}

// Render draws f into a new image.
func (s *Surface) Render(f progress.Frame) *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.style
	img := image.NewRGBA(image.Rect(0, 0, st.Size, st.Size))
	draw.Draw(img, img.Bounds(), image.NewUniform(st.Background), image.Point{}, draw.Src)

	c := float64(st.Size) / 2
	stroke := max(st.BarWidth, st.RimWidth)
	radius := c - stroke/2 - 1

	if st.RimWidth > 0 {
		s.ring(img, c, radius, st.RimWidth, 0, 360, st.RimColor)
	}

	mode := f.Mode()
	if mode == progress.DrawBar || mode == progress.DrawSpinnerAndBar {
		start, sweep := BarArc(f)
		s.ring(img, c, radius, st.BarWidth, start, sweep, st.BarColor)
	}
	if mode == progress.DrawSpinner || mode == progress.DrawSpinnerAndBar {
		start, sweep := SpinnerArc(f)
		s.ring(img, c, radius, st.BarWidth, start, sweep, st.SpinnerColor)
	}

	if st.ShowText && mode == progress.DrawBar {
		label(img, c, Percent(f), st.TextColor)
	}
	return img
}

// BarArc returns the start angle and clockwise sweep of the value bar in
// degrees, with 0° at three o'clock.
func BarArc(f progress.Frame) (start, sweep float64) {
	sweep = min(360, max(0, f.BarDegrees()))
	if f.Direction == progress.CounterClockwise {
		return f.StartAngle - sweep, sweep
	}
	return f.StartAngle, sweep
}

// SpinnerArc returns the start angle and clockwise sweep of the spinner in
// degrees, with 0° at three o'clock. The spinner's leading edge sits at
// SpinnerDegree past the start angle.
func SpinnerArc(f progress.Frame) (start, sweep float64) {
	sweep = min(360, max(0, f.SpinnerLength))
	if f.Direction == progress.CounterClockwise {
		return f.StartAngle - f.SpinnerDegree, sweep
	}
	return f.StartAngle + f.SpinnerDegree - sweep, sweep
}

// Percent returns the value as a whole percentage of MaxValue.
func Percent(f progress.Frame) int {
	if f.MaxValue <= 0 {
		return 0
	}
	return int(math.Round(f.Value / f.MaxValue * 100))
}

// ring fills the annular sector of the given stroke width centred on radius.
func (s *Surface) ring(dst draw.Image, c, radius, width, startDeg, sweepDeg float64, col color.Color) {
	if sweepDeg <= 0 || width <= 0 {
		return
	}
	outer := radius + width/2
	inner := max(0, radius-width/2)
	start := startDeg * math.Pi / 180
	sweep := sweepDeg * math.Pi / 180

	z := s.raster
	z.Reset(s.style.Size, s.style.Size)
	ox, oy := polar(c, outer, start)
	z.MoveTo(ox, oy)
	arcTo(z, c, outer, start, sweep)
	ix, iy := polar(c, inner, start+sweep)
	z.LineTo(ix, iy)
	arcTo(z, c, inner, start+sweep, -sweep)
	z.ClosePath()
	z.Draw(dst, dst.Bounds(), image.NewUniform(col), image.Point{})
}

// arcTo appends an arc as cubic Béziers of at most 90° each, continuing
// from the point at angle start.
func arcTo(z *vector.Rasterizer, c, r, start, sweep float64) {
	const maxSegment = math.Pi / 2
	remaining := sweep
	angle := start
	for math.Abs(remaining) > 1e-4 {
		seg := math.Copysign(min(math.Abs(remaining), maxSegment), remaining)
		k := 4.0 / 3.0 * math.Tan(seg/4)
		end := angle + seg

		x0, y0 := c+r*math.Cos(angle), c+r*math.Sin(angle)
		x3, y3 := c+r*math.Cos(end), c+r*math.Sin(end)
		x1, y1 := x0-k*r*math.Sin(angle), y0+k*r*math.Cos(angle)
		x2, y2 := x3+k*r*math.Sin(end), y3-k*r*math.Cos(end)
		z.CubeTo(float32(x1), float32(y1), float32(x2), float32(y2), float32(x3), float32(y3))

		angle = end
		remaining -= seg
	}
}

func polar(c, r, a float64) (float32, float32) {
	return float32(c + r*math.Cos(a)), float32(c + r*math.Sin(a))
}

func label(dst draw.Image, c float64, pct int, col color.Color) {
	face := basicfont.Face7x13
	text := fmt.Sprintf("%d%%", pct)
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
	}
	width := d.MeasureString(text)
	m := face.Metrics()
	d.Dot = fixed.Point26_6{
		X: fixed.I(int(c)) - width/2,
		Y: fixed.I(int(c)) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(text)
}
