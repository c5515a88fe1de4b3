package progress

// DrawMode selects which arcs a renderer draws for a frame.
type DrawMode int

const (
	// DrawBar draws the value bar only.
	DrawBar DrawMode = iota
	// DrawSpinner draws the spinner only.
	DrawSpinner
	// DrawSpinnerAndBar draws the shrinking spinner over the growing bar.
	DrawSpinnerAndBar
)

func (m DrawMode) String() string {
	switch m {
	case DrawSpinner:
		return "spinner"
	case DrawSpinnerAndBar:
		return "spinner+bar"
	default:
		return "bar"
	}
}

// Frame is an immutable snapshot of everything a renderer needs.
type Frame struct {
	State                AnimationState
	Value                float64
	MaxValue             float64
	SpinnerDegree        float64
	SpinnerLength        float64
	DrawBarWhileSpinning bool
	Direction            Direction
	StartAngle           float64
}

func newFrame(s AnimationState, ac *AnimationContext) Frame {
	return Frame{
		State:                s,
		Value:                ac.CurrentValue,
		MaxValue:             ac.MaxValue,
		SpinnerDegree:        ac.SpinnerDegree,
		SpinnerLength:        ac.SpinnerLengthCurrent,
		DrawBarWhileSpinning: ac.DrawBarWhileSpinning,
		Direction:            ac.Direction,
		StartAngle:           ac.StartAngle,
	}
}

// Mode returns the arcs to draw for f.
func (f Frame) Mode() DrawMode {
	switch f.State {
	case StateSpinning, StateEndSpinning:
		return DrawSpinner
	case StateEndSpinningStartAnimating:
		if f.DrawBarWhileSpinning {
			return DrawSpinnerAndBar
		}
		return DrawSpinner
	default:
		return DrawBar
	}
}

// BarDegrees returns the sweep of the value bar in degrees.
func (f Frame) BarDegrees() float64 {
	if f.MaxValue <= 0 {
		return 0
	}
	return 360 * f.Value / f.MaxValue
}
