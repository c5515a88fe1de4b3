package progress

import (
	"math"
	"time"

	"github.com/go-drift/ringview/pkg/animation"
)

// AnimationContext holds the visual parameters animated by the state machine.
//
// It is owned by the engine and mutated only on the queue's consumer.
// Renderers must use the Frame snapshot instead of reading it directly.
type AnimationContext struct {
	// CurrentValue is the displayed value in [0, MaxValue].
	CurrentValue float64
	// ValueFrom and ValueTo are the endpoints of the active value animation.
	ValueFrom, ValueTo float64
	// MaxValue is the full-circle value, always > 0.
	MaxValue float64
	// MinValueAllowed and MaxValueAllowed clamp incoming values;
	// MaxValueAllowed < 0 means unbounded.
	MinValueAllowed, MaxValueAllowed float64

	RoundToBlock       bool
	BlockCount         int
	RoundToWholeNumber bool

	// SpinnerLengthOriginal is the nominal spinner arc length in degrees.
	SpinnerLengthOriginal float64
	// SpinnerLengthCurrent is the animated spinner arc length in degrees.
	SpinnerLengthCurrent float64
	// SpinnerDegree is the rotational offset of the spinner in degrees.
	SpinnerDegree float64
	// SpinSpeed is the spinner advance per tick in degrees.
	SpinSpeed float64
	// DrawBarWhileSpinning is set once the post-spin value reveal has begun.
	DrawBarWhileSpinning bool

	// AnimationDuration is the duration of the current value animation.
	AnimationDuration time.Duration
	// FrameDelay is the target tick period.
	FrameDelay time.Duration

	ValueCurve  animation.Curve
	LengthCurve animation.Curve

	Direction  Direction
	StartAngle float64

	value              animation.Interpolation
	length             animation.Interpolation
	spinnerLengthStart float64
}

func newAnimationContext(cfg Config) AnimationContext {
	ac := AnimationContext{
		MaxValue:              cfg.MaxValue,
		MinValueAllowed:       cfg.MinValueAllowed,
		MaxValueAllowed:       cfg.MaxValueAllowed,
		RoundToBlock:          cfg.RoundToBlock,
		BlockCount:            cfg.BlockCount,
		RoundToWholeNumber:    cfg.RoundToWholeNumber,
		SpinnerLengthOriginal: cfg.SpinnerLength,
		SpinnerLengthCurrent:  cfg.SpinnerLength,
		SpinSpeed:             cfg.SpinSpeed,
		AnimationDuration:     cfg.DefaultAnimationDuration,
		FrameDelay:            cfg.FrameDelay,
		ValueCurve:            cfg.ValueCurve,
		LengthCurve:           cfg.LengthCurve,
		Direction:             cfg.Direction,
		StartAngle:            cfg.StartAngle,
	}
	v := ac.Constrain(cfg.InitialValue)
	ac.CurrentValue, ac.ValueFrom, ac.ValueTo = v, v, v
	return ac
}

// Constrain applies the configured rounding and then the allowed range to v.
// NaN and -Inf become MinValueAllowed; +Inf becomes MaxValue before the
// range is applied.
func (ac *AnimationContext) Constrain(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, -1) {
		return ac.MinValueAllowed
	}
	if math.IsInf(v, 1) {
		v = ac.MaxValue
	}
	if ac.RoundToBlock && ac.BlockCount > 0 {
		perBlock := ac.MaxValue / float64(ac.BlockCount)
		v = roundHalfUp(v/perBlock) * perBlock
	} else if ac.RoundToWholeNumber {
		v = roundHalfUp(v)
	}
	v = max(ac.MinValueAllowed, v)
	if ac.MaxValueAllowed >= 0 {
		v = min(ac.MaxValueAllowed, v)
	}
	return v
}

// ValueDegrees returns the arc length of the bar for the current value.
func (ac *AnimationContext) ValueDegrees() float64 {
	return 360 * ac.CurrentValue / ac.MaxValue
}

// lengthChangeDuration is the time the spinner takes to grow or shrink by
// degrees: twice the ticks it would need to travel that far at SpinSpeed.
func (ac *AnimationContext) lengthChangeDuration(degrees float64) time.Duration {
	frames := math.Abs(degrees) / ac.SpinSpeed * lengthChangeSlowdown
	return animation.FrameDuration(frames, ac.FrameDelay)
}

// startLengthChange begins a spinner length animation from the current length.
func (ac *AnimationContext) startLengthChange(now time.Time, degrees float64) {
	ac.spinnerLengthStart = ac.SpinnerLengthCurrent
	ac.length = animation.Interpolation{
		Start:    now,
		Duration: ac.lengthChangeDuration(degrees),
	}
}

// lengthRatio returns the eased progress of the spinner length animation.
func (ac *AnimationContext) lengthRatio(now time.Time) float64 {
	ac.length.Curve = ac.LengthCurve
	return ac.length.Eased(now)
}

// startValueAnimation restarts the value clock.
func (ac *AnimationContext) startValueAnimation(now time.Time) {
	ac.value.Restart(now)
}

// stepValue moves CurrentValue along the value animation and reports whether
// it has finished. A finished animation lands exactly on ValueTo.
func (ac *AnimationContext) stepValue(now time.Time) bool {
	ac.value.Duration = ac.AnimationDuration
	ac.value.Curve = ac.ValueCurve
	if ac.value.Done(now) {
		ac.CurrentValue = ac.ValueTo
		return true
	}
	ac.CurrentValue = animation.Lerp(ac.ValueFrom, ac.ValueTo, ac.value.Eased(now))
	return false
}

// advanceSpinner rotates the spinner by one tick, wrapping into [0, 360).
func (ac *AnimationContext) advanceSpinner() {
	ac.SpinnerDegree = math.Mod(ac.SpinnerDegree+ac.SpinSpeed, 360)
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
