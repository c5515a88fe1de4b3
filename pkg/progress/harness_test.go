package progress

import (
	ringtest "github.com/go-drift/ringview/pkg/testing"
)

// harness drives an Indicator on a fake clock from the test goroutine.
type harness struct {
	ind      *Indicator
	clock    *ringtest.FakeClock
	surface  *ringtest.RecordingSurface
	states   []AnimationState
	progress []float64
}

func newHarness(cfg Config) *harness {
	h := &harness{
		clock:   ringtest.NewFakeClock(),
		surface: &ringtest.RecordingSurface{},
	}
	h.ind = New(h.surface, cfg,
		WithClock(h.clock),
		WithStateObserver(func(s AnimationState) { h.states = append(h.states, s) }),
		WithProgressObserver(func(v float64) { h.progress = append(h.progress, v) }),
	)
	return h
}

// frames advances n frame delays, processing due messages after each.
func (h *harness) frames(n int) {
	ringtest.Pump(h.clock, h.ind, h.ind.engine.ac.FrameDelay, n)
}

// until advances frame by frame until done holds or maxFrames have passed.
func (h *harness) until(maxFrames int, done func(Frame) bool) (int, bool) {
	return ringtest.PumpUntil(h.clock, h.ind, h.ind.engine.ac.FrameDelay, maxFrames, func() bool {
		return done(h.ind.Frame())
	})
}

func (h *harness) count(s AnimationState) int {
	n := 0
	for _, got := range h.states {
		if got == s {
			n++
		}
	}
	return n
}

func inState(s AnimationState) func(Frame) bool {
	return func(f Frame) bool { return f.State == s }
}
