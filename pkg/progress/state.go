package progress

import "fmt"

// AnimationState is the state of the indicator's animation state machine.
type AnimationState int

const (
	// StateIdle shows the bar at the current value; nothing is animating.
	StateIdle AnimationState = iota
	// StateSpinning rotates the spinner arc, growing or shrinking it to its
	// nominal length.
	StateSpinning
	// StateEndSpinning keeps rotating while the spinner shrinks to nothing.
	StateEndSpinning
	// StateEndSpinningStartAnimating hands off from the spinner to a value
	// animation: the spinner finishes its revolution, then shrinks while the
	// bar is revealed.
	StateEndSpinningStartAnimating
	// StateAnimating interpolates the bar from ValueFrom to ValueTo.
	StateAnimating
	// StateStartAnimatingAfterSpinning is reported to observers when the bar
	// starts revealing during StateEndSpinningStartAnimating. It is never the
	// stored state.
	StateStartAnimatingAfterSpinning
)

// String returns a human-readable representation of the state.
func (s AnimationState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSpinning:
		return "spinning"
	case StateEndSpinning:
		return "end_spinning"
	case StateEndSpinningStartAnimating:
		return "end_spinning_start_animating"
	case StateAnimating:
		return "animating"
	case StateStartAnimatingAfterSpinning:
		return "start_animating_after_spinning"
	default:
		return fmt.Sprintf("AnimationState(%d)", int(s))
	}
}

// Animated reports whether the state needs frame ticks.
func (s AnimationState) Animated() bool {
	return s != StateIdle
}
