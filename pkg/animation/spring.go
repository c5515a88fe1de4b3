package animation

import "github.com/charmbracelet/harmonica"

// springSamples is the number of simulation steps across the normalized
// [0, 1] time range.
const springSamples = 240

// DefaultSpring is a critically damped spring that settles within the
// animation duration.
var DefaultSpring = SpringCurve(10, 1.0)

// SpringCurve returns a curve that follows a damped spring pulled from 0
// toward 1. The whole animation duration is treated as one simulated second,
// so frequency is in radians per animation. Damping below 1 overshoots.
//
// The spring is simulated once up front; evaluating the curve is a table
// lookup with linear interpolation between samples.
func SpringCurve(frequency, damping float64) Curve {
	spring := harmonica.NewSpring(1.0/springSamples, frequency, damping)
	samples := make([]float64, springSamples+1)
	pos, vel := 0.0, 0.0
	for i := 1; i <= springSamples; i++ {
		pos, vel = spring.Update(pos, vel, 1.0)
		samples[i] = pos
	}

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		x := t * springSamples
		i := int(x)
		frac := x - float64(i)
		return Lerp(samples[i], samples[i+1], frac)
	}
}
