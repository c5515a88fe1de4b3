package animation

import "time"

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Interpolation tracks one time-based sub-animation.
//
// The zero Duration means the interpolation is complete as soon as it starts.
type Interpolation struct {
	// Start is the clock reading at which the interpolation began.
	Start time.Time
	// Duration is the length of the interpolation.
	Duration time.Duration
	// Curve eases the linear ratio. Nil means linear.
	Curve Curve
}

// Restart resets the start time, keeping duration and curve.
func (in *Interpolation) Restart(now time.Time) {
	in.Start = now
}

// Progress returns the linear ratio elapsed/duration clamped to [0, 1].
func (in Interpolation) Progress(now time.Time) float64 {
	if in.Duration <= 0 {
		return 1
	}
	return Clamp01(float64(now.Sub(in.Start)) / float64(in.Duration))
}

// Eased returns Progress passed through the curve.
func (in Interpolation) Eased(now time.Time) float64 {
	t := in.Progress(now)
	if in.Curve == nil {
		return t
	}
	return in.Curve(t)
}

// Done reports whether the interpolation has run its full duration.
func (in Interpolation) Done(now time.Time) bool {
	return in.Progress(now) >= 1
}

// FrameDuration converts a number of frames at the given frame delay into a
// duration. Fractional frames are kept.
func FrameDuration(frames float64, frameDelay time.Duration) time.Duration {
	return time.Duration(frames * float64(frameDelay))
}
