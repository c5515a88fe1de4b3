package progress

import (
	"sync/atomic"
	"time"

	"github.com/go-drift/ringview/pkg/animation"
	"github.com/go-drift/ringview/pkg/dispatch"
	"github.com/go-drift/ringview/pkg/errors"
)

// engine is the queue handler. Everything except frame and detached is
// confined to the queue's consumer.
type engine struct {
	queue   *dispatch.Queue
	clock   animation.Clock
	surface Surface

	state AnimationState
	ac    AnimationContext

	defaultDuration time.Duration
	onState         func(AnimationState)
	onProgress      func(float64)
	lastProgress    float64

	frame    atomic.Pointer[Frame]
	detached atomic.Bool
}

func newEngine(surface Surface, cfg Config) *engine {
	e := &engine{
		surface:         surface,
		state:           StateIdle,
		ac:              newAnimationContext(cfg),
		defaultDuration: cfg.DefaultAnimationDuration,
	}
	e.lastProgress = e.ac.CurrentValue
	e.detached.Store(surface == nil)
	e.publish()
	return e
}

// Handle processes one message from the queue.
func (e *engine) Handle(msg dispatch.Message) {
	if e.detached.Load() {
		return
	}
	cmd, _ := msg.Payload.(Command)
	cmd.Kind = CommandKind(msg.Kind)

	switch cmd.Kind {
	case CommandTick:
		// At most one tick is ever outstanding.
		e.queue.Remove(CommandTick.queueKind())
	case commandConfigure:
		if cmd.configure != nil {
			cmd.configure(e)
		}
		e.publish()
		return
	}

	next, fx := Transition(e.state, cmd, &e.ac, msg.Delivered)
	e.state = next
	e.publish()
	e.apply(fx, msg.Delivered)
}

func (e *engine) apply(fx Effects, delivered time.Time) {
	for _, s := range fx.Signals {
		e.emitState(s)
	}
	if fx.NotifyProgress && fx.Progress != e.lastProgress {
		e.lastProgress = fx.Progress
		e.emitProgress(fx.Progress)
	}
	if fx.Redraw {
		e.surface.Invalidate()
	}
	if fx.ScheduleTick {
		e.scheduleTick(delivered)
	}
}

// scheduleTick queues the next frame one frame delay after the current one
// was delivered, minus the time spent processing it.
func (e *engine) scheduleTick(delivered time.Time) {
	spent := animation.Since(e.clock, delivered)
	delay := max(0, e.ac.FrameDelay-spent)
	e.queue.Remove(CommandTick.queueKind())
	e.queue.SendDelayed(CommandTick.queueKind(), nil, delay)
}

func (e *engine) publish() {
	f := newFrame(e.state, &e.ac)
	e.frame.Store(&f)
}

func (e *engine) emitState(s AnimationState) {
	if e.onState == nil {
		return
	}
	defer errors.Recover("progress.OnAnimationStateChanged")
	e.onState(s)
}

func (e *engine) emitProgress(v float64) {
	if e.onProgress == nil {
		return
	}
	defer errors.Recover("progress.OnProgressChanged")
	e.onProgress(v)
}
