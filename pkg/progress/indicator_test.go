package progress

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"

	"github.com/go-drift/ringview/pkg/errors"
	ringtest "github.com/go-drift/ringview/pkg/testing"
)

func TestIndicator_SetValue(t *testing.T) {
	h := newHarness(DefaultConfig())

	h.ind.SetValue(42)
	if got := h.ind.Value(); got != 0 {
		t.Errorf("Value() before processing = %v, want 0", got)
	}
	h.ind.RunDue()

	assert.Equal(t, h.ind.Value(), 42.0)
	assert.Equal(t, h.ind.State(), StateIdle)
	assert.Equal(t, h.surface.Invalidations(), 1)
	assert.DeepEqual(t, h.progress, []float64{42})
	assert.Equal(t, h.ind.queue.Len(), 0)
}

func TestIndicator_CommandsApplyInOrder(t *testing.T) {
	h := newHarness(DefaultConfig())
	h.ind.SetValue(10)
	h.ind.SetValue(20)
	h.ind.SetValue(20)
	h.ind.RunDue()

	assert.Equal(t, h.ind.Value(), 20.0)
	assert.DeepEqual(t, h.progress, []float64{10, 20})
}

func TestIndicator_SpinAndStop(t *testing.T) {
	h := newHarness(DefaultConfig())

	h.ind.Spin()
	h.ind.RunDue()
	assert.Equal(t, h.ind.State(), StateSpinning)

	if _, ok := h.until(40, func(f Frame) bool { return f.SpinnerLength == DefaultSpinnerLength }); !ok {
		t.Fatalf("spinner did not reach nominal length, got %v", h.ind.Frame().SpinnerLength)
	}

	h.ind.StopSpinning()
	h.ind.RunDue()
	assert.Equal(t, h.ind.State(), StateEndSpinning)

	if _, ok := h.until(32, inState(StateIdle)); !ok {
		t.Fatalf("state = %v after end spinning, want idle", h.ind.State())
	}
	assert.DeepEqual(t, h.states, []AnimationState{StateSpinning, StateEndSpinning, StateIdle})
	assert.Equal(t, h.ind.queue.Len(), 0)
}

func TestIndicator_SingleOutstandingTick(t *testing.T) {
	h := newHarness(DefaultConfig())
	h.ind.Spin()
	h.ind.RunDue()
	assert.Equal(t, h.ind.queue.Len(), 1)

	tick := CommandTick.queueKind()
	for range 3 {
		h.ind.queue.Send(tick, nil)
	}
	assert.Equal(t, h.ind.queue.Len(), 4)

	delivered := h.ind.RunDue()
	assert.Equal(t, delivered, 1)
	assert.Equal(t, h.ind.queue.Len(), 1)
	assert.Assert(t, h.ind.queue.Has(tick))
}

func TestIndicator_IdleTickIsNoOp(t *testing.T) {
	h := newHarness(DefaultConfig())
	h.ind.queue.Send(CommandTick.queueKind(), nil)

	assert.Equal(t, h.ind.RunDue(), 1)
	assert.Equal(t, h.ind.queue.Len(), 0)
	assert.Equal(t, h.surface.Invalidations(), 0)
	assert.Assert(t, h.states == nil)
}

func TestIndicator_SetValueAnimatedDefaultDuration(t *testing.T) {
	h := newHarness(DefaultConfig())
	h.ind.SetValueAnimated(80, 0)
	h.ind.RunDue()

	assert.Equal(t, h.ind.State(), StateAnimating)
	assert.Equal(t, h.ind.engine.ac.AnimationDuration, DefaultAnimationDuration)
	assert.DeepEqual(t, h.progress, []float64{80})

	steps, ok := h.until(200, inState(StateIdle))
	assert.Assert(t, ok)
	assert.Equal(t, steps, 120)
	assert.Equal(t, h.ind.Value(), 80.0)
}

func TestIndicator_SpinThenValueHandoff(t *testing.T) {
	h := newHarness(DefaultConfig())

	h.ind.Spin()
	h.frames(40)
	h.ind.SetValueAnimated(50, 0)
	h.ind.RunDue()
	assert.Equal(t, h.ind.State(), StateEndSpinningStartAnimating)

	sawBar := false
	_, ok := h.until(400, func(f Frame) bool {
		if f.Mode() == DrawSpinnerAndBar {
			sawBar = true
		}
		return f.State == StateAnimating
	})
	assert.Assert(t, ok, "handoff did not finish, state %v", h.ind.State())
	assert.Assert(t, sawBar, "bar never drawn during handoff")

	f := h.ind.Frame()
	assert.Assert(t, !f.DrawBarWhileSpinning)
	assert.Equal(t, f.SpinnerLength, DefaultSpinnerLength)

	_, ok = h.until(200, inState(StateIdle))
	assert.Assert(t, ok)
	assert.Equal(t, h.ind.Value(), 50.0)

	want := []AnimationState{
		StateSpinning,
		StateEndSpinningStartAnimating,
		StateStartAnimatingAfterSpinning,
		StateAnimating,
		StateIdle,
	}
	if diff := cmp.Diff(want, h.states); diff != "" {
		t.Errorf("state changes (-want +got):\n%s", diff)
	}
}

func TestIndicator_Detached(t *testing.T) {
	ind := New(nil, DefaultConfig())
	var notified bool
	ind.OnProgressChanged(func(float64) { notified = true })
	ind.SetValue(50)
	ind.RunDue()

	assert.Equal(t, ind.Value(), 0.0)
	assert.Assert(t, !notified)
}

func TestIndicator_DetachDropsPendingTicks(t *testing.T) {
	h := newHarness(DefaultConfig())
	h.ind.Spin()
	h.frames(3)
	before := h.ind.Frame()
	redraws := h.surface.Invalidations()

	h.ind.Detach()
	assert.Assert(t, !h.ind.queue.Has(CommandTick.queueKind()))
	h.ind.SetValue(70)
	h.frames(10)

	assert.DeepEqual(t, h.ind.Frame(), before)
	assert.Equal(t, h.surface.Invalidations(), redraws)
}

func TestIndicator_InfiniteValueStillStops(t *testing.T) {
	h := newHarness(DefaultConfig())
	h.ind.SetValue(math.Inf(1))
	h.ind.Spin()
	h.frames(30)

	f := h.ind.Frame()
	assert.Equal(t, f.Value, 100.0)
	assert.Assert(t, !math.IsNaN(f.SpinnerLength) && !math.IsNaN(f.SpinnerDegree),
		"spinner length %v degree %v", f.SpinnerLength, f.SpinnerDegree)

	h.ind.StopSpinning()
	_, ok := h.until(200, inState(StateIdle))
	assert.Assert(t, ok, "still %v with spinner length %v", h.ind.State(), h.ind.Frame().SpinnerLength)

	h.ind.SetValue(math.Inf(-1))
	h.frames(1)
	assert.Equal(t, h.ind.Value(), 0.0)
}

func TestIndicator_TickDelaySubtractsFrameCost(t *testing.T) {
	const delay = 10 * time.Millisecond
	tests := []struct {
		name      string
		cost      time.Duration
		delivered int
		next      time.Duration
	}{
		// Cost inside the frame budget: the next tick keeps the cadence.
		{"cheap frame", 4 * time.Millisecond, 1, 20 * time.Millisecond},
		// Cost over budget: a catch-up tick runs at once, then one frame later.
		{"slow frame", 25 * time.Millisecond, 2, 45 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(DefaultConfig())
			h.ind.Spin()
			h.ind.RunDue()

			next, ok := h.ind.queue.Next()
			assert.Assert(t, ok)
			assert.Equal(t, next.Sub(h.clock.Now()), delay)

			charged := false
			h.surface.OnInvalidate = func() {
				if !charged {
					charged = true
					h.clock.Advance(tt.cost)
				}
			}
			h.clock.Advance(delay)
			assert.Equal(t, h.ind.RunDue(), tt.delivered)

			next, ok = h.ind.queue.Next()
			assert.Assert(t, ok)
			assert.Equal(t, next.Sub(ringtest.Epoch), tt.next)
		})
	}
}

type recordingHandler struct {
	mu     sync.Mutex
	panics []string
}

func (r *recordingHandler) HandleError(*errors.Error) {}

func (r *recordingHandler) HandlePanic(p *errors.PanicError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panics = append(r.panics, p.Op)
}

func TestIndicator_ObserverPanicIsContained(t *testing.T) {
	rec := &recordingHandler{}
	errors.SetHandler(rec)
	t.Cleanup(func() { errors.SetHandler(nil) })

	h := newHarness(DefaultConfig())
	h.ind.OnProgressChanged(func(float64) { panic("observer failed") })
	h.ind.SetValueAnimated(60, 100*time.Millisecond)
	h.ind.RunDue()

	assert.DeepEqual(t, rec.panics, []string{"progress.OnProgressChanged"})
	assert.Equal(t, h.surface.Invalidations(), 1)

	_, ok := h.until(20, inState(StateIdle))
	assert.Assert(t, ok, "animation stalled after observer panic")
	assert.Equal(t, h.ind.Value(), 60.0)
}

func TestIndicator_Setters(t *testing.T) {
	h := newHarness(DefaultConfig())
	h.ind.SetSpinSpeed(5)
	h.ind.SetSpinnerLength(90)
	h.ind.SetMaxValue(200)
	h.ind.SetValueBounds(10, 150)
	h.ind.RunDue()

	ac := h.ind.engine.ac
	assert.Equal(t, ac.SpinSpeed, 5.0)
	assert.Equal(t, ac.SpinnerLengthOriginal, 90.0)
	assert.Equal(t, ac.MaxValue, 200.0)
	assert.Equal(t, ac.MinValueAllowed, 10.0)
	assert.Equal(t, ac.MaxValueAllowed, 150.0)
	assert.Equal(t, h.ind.Frame().MaxValue, 200.0)

	h.ind.SetSpinSpeed(0)
	h.ind.SetSpinnerLength(-1)
	h.ind.SetMaxValue(-3)
	assert.Equal(t, h.ind.queue.Len(), 0)

	h.ind.SetValue(500)
	h.ind.RunDue()
	assert.Equal(t, h.ind.Value(), 150.0)
}

func TestIndicator_ReplaceObservers(t *testing.T) {
	h := newHarness(DefaultConfig())
	var got []AnimationState
	h.ind.OnAnimationStateChanged(func(s AnimationState) { got = append(got, s) })
	h.ind.Spin()
	h.ind.RunDue()

	assert.DeepEqual(t, got, []AnimationState{StateSpinning})
	assert.Assert(t, h.states == nil)
}

func TestIndicator_CloseDropsCommands(t *testing.T) {
	h := newHarness(DefaultConfig())
	h.ind.Spin()
	h.ind.RunDue()

	h.ind.Close()
	h.ind.Close()
	h.ind.SetValue(30)
	assert.Equal(t, h.ind.RunDue(), 0)
	assert.Equal(t, h.ind.queue.Len(), 0)

	h.ind.Start()
	h.ind.mu.Lock()
	started := h.ind.cancel != nil
	h.ind.mu.Unlock()
	assert.Assert(t, !started, "Start after Close launched a consumer")
}

func TestIndicator_StartWithSystemClock(t *testing.T) {
	surface := make(chan struct{}, 16)
	ind := New(surfaceFunc(func() {
		select {
		case surface <- struct{}{}:
		default:
		}
	}), DefaultConfig())
	ind.Start()
	ind.Start()
	defer ind.Close()

	ind.SetValue(30)
	select {
	case <-surface:
	case <-time.After(2 * time.Second):
		t.Fatal("no redraw within 2s")
	}
	assert.Equal(t, ind.Value(), 30.0)

	ind.Spin()
	deadline := time.Now().Add(2 * time.Second)
	for ind.State() != StateSpinning && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	start := ind.Frame().SpinnerDegree
	for ind.Frame().SpinnerDegree == start && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	assert.Assert(t, ind.Frame().SpinnerDegree != start, "spinner did not move")
}

type surfaceFunc func()

func (f surfaceFunc) Invalidate() { f() }
