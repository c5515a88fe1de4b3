package progress

import (
	"context"
	"sync"
	"time"

	"github.com/go-drift/ringview/pkg/animation"
	"github.com/go-drift/ringview/pkg/dispatch"
)

// Surface is the renderable host of an indicator. Invalidate requests a
// redraw; the surface then reads [Indicator.Frame]. Invalidate runs on the
// queue's consumer and must not block.
type Surface interface {
	Invalidate()
}

// Option configures an Indicator at construction.
type Option func(*options)

type options struct {
	clock      animation.Clock
	onState    func(AnimationState)
	onProgress func(float64)
}

// WithClock sets the time source. Tests pass a fake clock and drive the
// indicator with RunDue.
func WithClock(c animation.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithStateObserver registers fn for every animation state change.
func WithStateObserver(fn func(AnimationState)) Option {
	return func(o *options) { o.onState = fn }
}

// WithProgressObserver registers fn for every change of the target value.
func WithProgressObserver(fn func(float64)) Option {
	return func(o *options) { o.onProgress = fn }
}

// Indicator is a circular percent indicator.
//
// All methods are safe for concurrent use. Commands are asynchronous: they
// take effect, in call order, when the queue's consumer processes them.
type Indicator struct {
	engine *engine
	queue  *dispatch.Queue

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}
}

// New creates an indicator drawing on surface. A nil surface creates a
// detached indicator whose commands are dropped.
//
// Non-positive MaxValue, SpinSpeed and FrameDelay are replaced by their
// defaults.
func New(surface Surface, cfg Config, opts ...Option) *Indicator {
	o := options{clock: animation.SystemClock}
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		o.clock = animation.SystemClock
	}

	e := newEngine(surface, cfg.normalized())
	e.clock = o.clock
	e.onState = o.onState
	e.onProgress = o.onProgress
	q := dispatch.New(e, dispatch.WithClock(o.clock))
	e.queue = q
	return &Indicator{engine: e, queue: q}
}

// Start runs the consumer on a new goroutine. It is a no-op if the indicator
// is already started or closed.
func (ind *Indicator) Start() {
	ind.mu.Lock()
	defer ind.mu.Unlock()
	if ind.cancel != nil || ind.queue.Closed() {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	ind.cancel = cancel
	ind.stopped = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		_ = ind.queue.Run(ctx)
	}(ind.stopped)
}

// Close discards pending commands and stops the consumer, waiting for it to
// exit. Later commands are dropped. Close is idempotent.
func (ind *Indicator) Close() {
	ind.queue.Close()
	ind.mu.Lock()
	cancel, stopped := ind.cancel, ind.stopped
	ind.mu.Unlock()
	if cancel != nil {
		cancel()
		<-stopped
	}
}

// RunDue processes every message due at the clock's current time on the
// calling goroutine and returns how many were processed. Use it instead of
// Start when driving the indicator with a fake clock.
func (ind *Indicator) RunDue() int {
	return ind.queue.RunDue()
}

// Detach drops the surface. Pending ticks are removed and every command
// processed afterwards is discarded.
func (ind *Indicator) Detach() {
	ind.engine.detached.Store(true)
	ind.queue.Remove(CommandTick.queueKind())
}

// Frame returns the snapshot published after the last processed message.
func (ind *Indicator) Frame() Frame {
	return *ind.engine.frame.Load()
}

// State returns the current animation state.
func (ind *Indicator) State() AnimationState {
	return ind.Frame().State
}

// Value returns the displayed value.
func (ind *Indicator) Value() float64 {
	return ind.Frame().Value
}

// SetValue jumps to v after clamping and rounding, ending any animation.
func (ind *Indicator) SetValue(v float64) {
	ind.send(Command{Kind: CommandSetValue, Value: v})
}

// SetValueAnimated animates from the displayed value to v. A non-positive
// duration uses Config.DefaultAnimationDuration.
func (ind *Indicator) SetValueAnimated(to float64, d time.Duration) {
	ind.send(Command{
		Kind:        CommandSetValueAnimated,
		To:          to,
		FromCurrent: true,
		Duration:    ind.duration(d),
	})
}

// SetValueAnimatedFrom animates from from to to. A non-positive duration uses
// Config.DefaultAnimationDuration.
func (ind *Indicator) SetValueAnimatedFrom(from, to float64, d time.Duration) {
	ind.send(Command{
		Kind:     CommandSetValueAnimated,
		From:     from,
		To:       to,
		Duration: ind.duration(d),
	})
}

// Spin enters indeterminate mode.
func (ind *Indicator) Spin() {
	ind.send(Command{Kind: CommandStartSpinning})
}

// StopSpinning leaves indeterminate mode. It is a no-op when not spinning.
func (ind *Indicator) StopSpinning() {
	ind.send(Command{Kind: CommandStopSpinning})
}

// SetValueInterpolator sets the easing of value animations. Nil restores
// AccelerateDecelerate.
func (ind *Indicator) SetValueInterpolator(c animation.Curve) {
	if c == nil {
		c = animation.AccelerateDecelerate
	}
	ind.configure(func(e *engine) { e.ac.ValueCurve = c })
}

// SetLengthChangeInterpolator sets the easing of spinner length changes. Nil
// restores Decelerate.
func (ind *Indicator) SetLengthChangeInterpolator(c animation.Curve) {
	if c == nil {
		c = animation.Decelerate
	}
	ind.configure(func(e *engine) { e.ac.LengthCurve = c })
}

// SetSpinSpeed sets the spinner advance per frame in degrees. Non-positive
// speeds are ignored.
func (ind *Indicator) SetSpinSpeed(deg float64) {
	if !(deg > 0) {
		return
	}
	ind.configure(func(e *engine) { e.ac.SpinSpeed = deg })
}

// SetSpinnerLength sets the nominal spinner length in degrees. A running
// spinner grows or shrinks to it. Negative lengths are ignored.
func (ind *Indicator) SetSpinnerLength(deg float64) {
	if !(deg >= 0) {
		return
	}
	ind.configure(func(e *engine) {
		e.ac.SpinnerLengthOriginal = deg
		if e.state == StateSpinning {
			e.ac.startLengthChange(e.clock.Now(), deg-e.ac.SpinnerLengthCurrent)
		}
	})
}

// SetMaxValue sets the full-circle value. Non-positive values are ignored.
func (ind *Indicator) SetMaxValue(v float64) {
	if !(v > 0) {
		return
	}
	ind.configure(func(e *engine) { e.ac.MaxValue = v })
}

// SetValueBounds sets the clamp applied to incoming values. A negative
// upper bound means unbounded. The displayed value is not re-clamped.
func (ind *Indicator) SetValueBounds(lo, hi float64) {
	ind.configure(func(e *engine) {
		e.ac.MinValueAllowed = lo
		e.ac.MaxValueAllowed = hi
	})
}

// OnAnimationStateChanged replaces the state observer. fn runs on the
// queue's consumer and must return quickly.
func (ind *Indicator) OnAnimationStateChanged(fn func(AnimationState)) {
	ind.configure(func(e *engine) { e.onState = fn })
}

// OnProgressChanged replaces the progress observer. fn runs on the queue's
// consumer and must return quickly.
func (ind *Indicator) OnProgressChanged(fn func(float64)) {
	ind.configure(func(e *engine) { e.onProgress = fn })
}

func (ind *Indicator) duration(d time.Duration) time.Duration {
	if d <= 0 {
		return ind.engine.defaultDuration
	}
	return d
}

func (ind *Indicator) configure(fn func(*engine)) {
	ind.send(Command{Kind: commandConfigure, configure: fn})
}

func (ind *Indicator) send(cmd Command) {
	ind.queue.Send(cmd.Kind.queueKind(), cmd)
}
