package progress

import (
	"math"
	"time"
)

// Thresholds tuned for a smooth handoff between the spinner and the bar.
const (
	// lengthSnapDegrees snaps the spinner to its nominal length when closer.
	lengthSnapDegrees = 1.0
	// spinnerGoneDegrees ends END_SPINNING once the spinner is shorter.
	spinnerGoneDegrees = 0.01
	// handoffDoneDegrees ends the spinner-to-bar handoff once the spinner is
	// shorter.
	handoffDoneDegrees = 0.1
	// lengthChangeSlowdown stretches length changes relative to the time the
	// spinner needs to rotate by the same angle.
	lengthChangeSlowdown = 2
)

// Effects lists what a transition asks of its host besides the context
// mutations it already performed.
type Effects struct {
	// Signals are the states to report to the state observer, in order.
	Signals []AnimationState
	// Redraw requests a surface invalidation.
	Redraw bool
	// ScheduleTick requests the next frame tick.
	ScheduleTick bool
	// Progress is the value to report to the progress observer when
	// NotifyProgress is set.
	Progress       float64
	NotifyProgress bool
}

type action func(*transition, Command)

// transition is the working set of a single Transition call.
type transition struct {
	state AnimationState
	ac    *AnimationContext
	now   time.Time
	fx    Effects
}

// transitions is indexed by [state][command]. A nil entry is a no-op.
var transitions = [StateAnimating + 1][CommandTick + 1]action{
	StateIdle: {
		CommandStartSpinning:    (*transition).enterSpinning,
		CommandSetValue:         (*transition).applyValue,
		CommandSetValueAnimated: (*transition).enterAnimating,
	},
	StateSpinning: {
		CommandStopSpinning:     (*transition).enterEndSpinning,
		CommandSetValue:         (*transition).applyValue,
		CommandSetValueAnimated: (*transition).enterHandoff,
		CommandTick:             (*transition).spinTick,
	},
	StateEndSpinning: {
		CommandStartSpinning:    (*transition).resumeSpinning,
		CommandSetValue:         (*transition).applyValue,
		CommandSetValueAnimated: (*transition).enterHandoff,
		CommandTick:             (*transition).endSpinTick,
	},
	StateEndSpinningStartAnimating: {
		CommandStartSpinning:    (*transition).abortHandoffAndSpin,
		CommandSetValue:         (*transition).abortHandoffAndApply,
		CommandSetValueAnimated: (*transition).retargetHandoff,
		CommandTick:             (*transition).handoffTick,
	},
	StateAnimating: {
		CommandStartSpinning:    (*transition).enterSpinning,
		CommandSetValue:         (*transition).applyValue,
		CommandSetValueAnimated: (*transition).restartAnimating,
		CommandTick:             (*transition).animateTick,
	},
}

// Transition applies cmd to the state machine in state s, mutating ac, and
// returns the next state together with the effects the host must carry out.
// now is the delivery time of cmd. Transition never blocks and holds no
// references to ac after it returns.
func Transition(s AnimationState, cmd Command, ac *AnimationContext, now time.Time) (AnimationState, Effects) {
	t := transition{state: s, ac: ac, now: now}
	if s < 0 || int(s) >= len(transitions) || cmd.Kind < 0 || int(cmd.Kind) >= len(transitions[s]) {
		return s, t.fx
	}
	if act := transitions[s][cmd.Kind]; act != nil {
		act(&t, cmd)
	}
	return t.state, t.fx
}

// moveTo changes the state and signals it when it differs.
func (t *transition) moveTo(s AnimationState) {
	if t.state == s {
		return
	}
	t.state = s
	t.signal(s)
}

func (t *transition) signal(s AnimationState) {
	t.fx.Signals = append(t.fx.Signals, s)
}

func (t *transition) notify(v float64) {
	t.fx.Progress = v
	t.fx.NotifyProgress = true
}

func (t *transition) tick() {
	t.fx.ScheduleTick = true
}

func (t *transition) redraw() {
	t.fx.Redraw = true
}

func (t *transition) enterSpinning(Command) {
	ac := t.ac
	t.moveTo(StateSpinning)
	deg := ac.ValueDegrees()
	ac.SpinnerLengthCurrent = deg
	ac.SpinnerDegree = deg
	ac.startLengthChange(t.now, ac.SpinnerLengthOriginal)
	t.tick()
}

func (t *transition) resumeSpinning(Command) {
	ac := t.ac
	t.moveTo(StateSpinning)
	ac.startLengthChange(t.now, ac.SpinnerLengthOriginal-ac.SpinnerLengthCurrent)
	t.tick()
}

func (t *transition) spinTick(Command) {
	ac := t.ac
	if math.Abs(ac.SpinnerLengthCurrent-ac.SpinnerLengthOriginal) < lengthSnapDegrees {
		ac.SpinnerLengthCurrent = ac.SpinnerLengthOriginal
	} else {
		r := ac.lengthRatio(t.now)
		ac.SpinnerLengthCurrent = ac.spinnerLengthStart + (ac.SpinnerLengthOriginal-ac.spinnerLengthStart)*r
	}
	ac.advanceSpinner()
	t.redraw()
	t.tick()
}

func (t *transition) enterEndSpinning(Command) {
	t.moveTo(StateEndSpinning)
	t.ac.startLengthChange(t.now, t.ac.SpinnerLengthCurrent)
	t.tick()
}

func (t *transition) endSpinTick(Command) {
	ac := t.ac
	ac.SpinnerLengthCurrent = ac.spinnerLengthStart * (1 - ac.lengthRatio(t.now))
	ac.advanceSpinner()
	if ac.SpinnerLengthCurrent < spinnerGoneDegrees {
		t.moveTo(StateIdle)
	}
	t.redraw()
	if t.state != StateIdle {
		t.tick()
	}
}

// enterHandoff starts the spinner-to-bar handoff. The bar is revealed from
// zero once the spinner completes its current revolution.
func (t *transition) enterHandoff(cmd Command) {
	ac := t.ac
	t.moveTo(StateEndSpinningStartAnimating)
	to := ac.Constrain(cmd.To)
	ac.ValueFrom = 0
	ac.ValueTo = to
	ac.AnimationDuration = cmd.Duration
	ac.startLengthChange(t.now, ac.SpinnerLengthOriginal)
	t.tick()
	t.notify(to)
}

func (t *transition) retargetHandoff(cmd Command) {
	ac := t.ac
	to := ac.Constrain(cmd.To)
	ac.ValueFrom = 0
	ac.ValueTo = to
	ac.AnimationDuration = cmd.Duration
	t.tick()
	t.notify(to)
}

func (t *transition) abortHandoffAndSpin(cmd Command) {
	t.ac.DrawBarWhileSpinning = false
	t.enterSpinning(cmd)
}

func (t *transition) abortHandoffAndApply(cmd Command) {
	t.ac.DrawBarWhileSpinning = false
	t.applyValue(cmd)
}

// handoffTick runs the two overlapping sub-animations of the handoff: the
// spinner finishing its revolution and then shrinking, and the bar growing
// from zero once the revolution is complete.
func (t *transition) handoffTick(Command) {
	ac := t.ac
	if !ac.DrawBarWhileSpinning && ac.SpinnerLengthCurrent > ac.SpinnerLengthOriginal {
		r := ac.lengthRatio(t.now)
		ac.SpinnerLengthCurrent = max(ac.SpinnerLengthOriginal,
			ac.spinnerLengthStart+(ac.SpinnerLengthOriginal-ac.spinnerLengthStart)*r)
	}

	ac.SpinnerDegree += ac.SpinSpeed
	if ac.SpinnerDegree > 360 && !ac.DrawBarWhileSpinning {
		ac.DrawBarWhileSpinning = true
		ac.startValueAnimation(t.now)
		ac.startLengthChange(t.now, ac.SpinnerLengthCurrent)
		t.signal(StateStartAnimatingAfterSpinning)
	}

	if ac.DrawBarWhileSpinning {
		ac.SpinnerDegree = 360
		shrunk := ac.spinnerLengthStart * (1 - ac.lengthRatio(t.now))
		ac.SpinnerLengthCurrent = max(0, min(ac.SpinnerLengthCurrent-ac.SpinSpeed, shrunk))
		ac.stepValue(t.now)
	}

	if ac.SpinnerLengthCurrent < handoffDoneDegrees {
		if !ac.DrawBarWhileSpinning {
			// The spinner vanished before the bar started; reveal from now.
			ac.startValueAnimation(t.now)
		}
		t.moveTo(StateAnimating)
		ac.DrawBarWhileSpinning = false
		ac.SpinnerLengthCurrent = ac.SpinnerLengthOriginal
	}
	t.redraw()
	t.tick()
}

func (t *transition) enterAnimating(cmd Command) {
	ac := t.ac
	from := ac.CurrentValue
	if !cmd.FromCurrent {
		from = ac.Constrain(cmd.From)
	}
	to := ac.Constrain(cmd.To)
	ac.ValueFrom, ac.ValueTo = from, to
	ac.CurrentValue = from
	ac.AnimationDuration = cmd.Duration
	ac.startValueAnimation(t.now)
	t.moveTo(StateAnimating)
	t.redraw()
	t.tick()
	t.notify(to)
}

// restartAnimating retargets a running value animation from the displayed
// value so the bar never jumps.
func (t *transition) restartAnimating(cmd Command) {
	ac := t.ac
	to := ac.Constrain(cmd.To)
	ac.ValueFrom = ac.CurrentValue
	ac.ValueTo = to
	ac.AnimationDuration = cmd.Duration
	ac.startValueAnimation(t.now)
	t.tick()
	t.notify(to)
}

func (t *transition) animateTick(Command) {
	if t.ac.stepValue(t.now) {
		t.moveTo(StateIdle)
	}
	t.redraw()
	if t.state != StateIdle {
		t.tick()
	}
}

func (t *transition) applyValue(cmd Command) {
	ac := t.ac
	v := ac.Constrain(cmd.Value)
	ac.ValueFrom, ac.ValueTo, ac.CurrentValue = v, v, v
	t.moveTo(StateIdle)
	t.redraw()
	t.notify(v)
}
