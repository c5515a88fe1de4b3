package raster

import (
	"image/color"
	"math"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/go-drift/ringview/pkg/errors"
	"github.com/go-drift/ringview/pkg/progress"
	ringtest "github.com/go-drift/ringview/pkg/testing"
)

var (
	rimColor     = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}
	barColor     = color.RGBA{R: 0xff, A: 0xff}
	spinnerColor = color.RGBA{G: 0xff, A: 0xff}
	background   = color.RGBA{B: 0xff, A: 0xff}
)

func testStyle() Style {
	return Style{
		Size:         128,
		BarWidth:     12,
		RimWidth:     12,
		Background:   background,
		RimColor:     rimColor,
		BarColor:     barColor,
		SpinnerColor: spinnerColor,
	}
}

// ringPoint returns the pixel on the middle of the stroke at deg degrees.
func ringPoint(s Style, deg float64) (int, int) {
	c := float64(s.Size) / 2
	r := c - max(s.BarWidth, s.RimWidth)/2 - 1
	a := deg * math.Pi / 180
	return int(c + r*math.Cos(a)), int(c + r*math.Sin(a))
}

func TestBarArc(t *testing.T) {
	tests := []struct {
		frame      progress.Frame
		start, end float64
	}{
		{progress.Frame{Value: 25, MaxValue: 100, StartAngle: 270}, 270, 90},
		{progress.Frame{Value: 25, MaxValue: 100, StartAngle: 270, Direction: progress.CounterClockwise}, 180, 90},
		{progress.Frame{Value: 250, MaxValue: 100}, 0, 360},
		{progress.Frame{Value: -5, MaxValue: 100}, 0, 0},
	}
	for _, tt := range tests {
		start, sweep := BarArc(tt.frame)
		if start != tt.start || sweep != tt.end {
			t.Errorf("BarArc(%+v) = (%v, %v), want (%v, %v)", tt.frame, start, sweep, tt.start, tt.end)
		}
	}
}

func TestSpinnerArc(t *testing.T) {
	f := progress.Frame{State: progress.StateSpinning, SpinnerDegree: 90, SpinnerLength: 45, StartAngle: 270}
	start, sweep := SpinnerArc(f)
	assert.Equal(t, start, 315.0)
	assert.Equal(t, sweep, 45.0)

	f.Direction = progress.CounterClockwise
	start, sweep = SpinnerArc(f)
	assert.Equal(t, start, 180.0)
	assert.Equal(t, sweep, 45.0)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, Percent(progress.Frame{Value: 33.4, MaxValue: 100}), 33)
	assert.Equal(t, Percent(progress.Frame{Value: 1, MaxValue: 3}), 33)
	assert.Equal(t, Percent(progress.Frame{Value: 5}), 0)
}

func TestRender_Bar(t *testing.T) {
	st := testStyle()
	s := NewSurface(st)
	img := s.Render(progress.Frame{State: progress.StateIdle, Value: 25, MaxValue: 100, StartAngle: 270})

	x, y := ringPoint(st, 315)
	assert.Equal(t, img.RGBAAt(x, y), barColor)
	x, y = ringPoint(st, 180)
	assert.Equal(t, img.RGBAAt(x, y), rimColor)
	assert.Equal(t, img.RGBAAt(64, 64), background)
	assert.Equal(t, img.RGBAAt(0, 0), background)
}

func TestRender_Spinner(t *testing.T) {
	st := testStyle()
	s := NewSurface(st)
	img := s.Render(progress.Frame{
		State:         progress.StateSpinning,
		Value:         80,
		MaxValue:      100,
		SpinnerDegree: 90,
		SpinnerLength: 45,
		StartAngle:    270,
	})

	x, y := ringPoint(st, 337)
	assert.Equal(t, img.RGBAAt(x, y), spinnerColor)
	// The bar is hidden while spinning.
	x, y = ringPoint(st, 90)
	assert.Equal(t, img.RGBAAt(x, y), rimColor)
}

func TestRender_SpinnerAndBar(t *testing.T) {
	st := testStyle()
	s := NewSurface(st)
	img := s.Render(progress.Frame{
		State:                progress.StateEndSpinningStartAnimating,
		DrawBarWhileSpinning: true,
		Value:                25,
		MaxValue:             100,
		SpinnerDegree:        360,
		SpinnerLength:        30,
		StartAngle:           0,
	})

	x, y := ringPoint(st, 45)
	assert.Equal(t, img.RGBAAt(x, y), barColor)
	x, y = ringPoint(st, 345)
	assert.Equal(t, img.RGBAAt(x, y), spinnerColor)
}

func TestRender_Text(t *testing.T) {
	st := testStyle()
	st.ShowText = true
	st.TextColor = color.RGBA{R: 0xff, G: 0xff, A: 0xff}
	img := NewSurface(st).Render(progress.Frame{Value: 50, MaxValue: 100})

	found := false
	for y := 50; y < 78 && !found; y++ {
		for x := 40; x < 88; x++ {
			if img.RGBAAt(x, y) != background {
				found = true
				break
			}
		}
	}
	assert.Assert(t, found, "no label pixels near the centre")
}

func TestSurface_Invalidate(t *testing.T) {
	s := NewSurface(testStyle())
	hooks := 0
	s.OnInvalidate = func() { hooks++ }
	s.Invalidate()
	s.Invalidate()
	assert.Equal(t, s.Frames(), 2)
	assert.Equal(t, hooks, 2)
}

type captureHandler struct{ errs []*errors.Error }

func (h *captureHandler) HandleError(err *errors.Error)  { h.errs = append(h.errs, err) }
func (h *captureHandler) HandlePanic(*errors.PanicError) {}

func TestNewSurface_Defaults(t *testing.T) {
	h := &captureHandler{}
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(nil) })

	s := NewSurface(Style{Size: 2})
	assert.Equal(t, s.Style().Size, minSize)
	assert.Assert(t, s.Style().Background != nil)
	assert.Equal(t, len(h.errs), 1)
	assert.Equal(t, h.errs[0].Kind, errors.KindSurface)

	img := s.Render(progress.Frame{})
	assert.Equal(t, img.Bounds().Dx(), minSize)
}

func TestSurface_DrivenByIndicator(t *testing.T) {
	clock := ringtest.NewFakeClock()
	s := NewSurface(testStyle())
	ind := progress.New(s, progress.DefaultConfig(), progress.WithClock(clock))

	ind.SetValueAnimated(100, 10*coarseFrame)
	ringtest.Pump(clock, ind, coarseFrame, 12)

	assert.Equal(t, ind.State(), progress.StateIdle)
	assert.Assert(t, s.Frames() >= 10, "frames = %d", s.Frames())

	img := s.Render(ind.Frame())
	x, y := ringPoint(testStyle(), 90)
	assert.Equal(t, img.RGBAAt(x, y), barColor)
}

const coarseFrame = progress.DefaultFrameDelay
