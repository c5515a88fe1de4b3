package animation

import (
	"math"
	"slices"

	"golang.org/x/exp/maps"
)

// Curve transforms linear animation progress into eased progress.
//
// A curve receives t in [0, 1] and returns the eased ratio. Curves must map
// 0 to 0 and 1 to 1; values in between may overshoot (see [SpringCurve]).
type Curve func(t float64) float64

// LinearCurve returns linear progress (no easing).
func LinearCurve(t float64) float64 {
	return t
}

// Accelerate starts slowly and speeds up (quadratic ease-in).
func Accelerate(t float64) float64 {
	return t * t
}

// Decelerate starts quickly and slows down (quadratic ease-out).
// It is the default curve for spinner length changes.
func Decelerate(t float64) float64 {
	inv := 1 - t
	return 1 - inv*inv
}

// AccelerateDecelerate starts and ends slowly along a cosine profile.
// It is the default curve for value animations.
func AccelerateDecelerate(t float64) float64 {
	return math.Cos((t+1)*math.Pi)/2 + 0.5
}

// Ease is a standard cubic bezier curve for general-purpose easing.
// Equivalent to CSS ease.
var Ease = CubicBezier(0.25, 0.1, 0.25, 1.0)

// EaseIn starts slowly and accelerates.
// Equivalent to CSS ease-in.
var EaseIn = CubicBezier(0.4, 0.0, 1.0, 1.0)

// EaseOut starts quickly and decelerates.
// Equivalent to CSS ease-out.
var EaseOut = CubicBezier(0.0, 0.0, 0.2, 1.0)

// EaseInOut starts and ends slowly with acceleration in the middle.
// Equivalent to CSS ease-in-out.
var EaseInOut = CubicBezier(0.4, 0.0, 0.2, 1.0)

// CubicBezier returns a cubic-bezier easing function matching CSS cubic-bezier().
// The parameters define the two control points (x1,y1) and (x2,y2) of the curve.
// The curve starts at (0,0) and ends at (1,1).
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		// Newton-Raphson converges quickly for most values.
		for range 8 {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return sampleCurve(y1, y2, Clamp01(u))
			}
			dx := sampleCurveDerivative(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// Fall back to bisection when Newton does not settle.
		lo, hi := 0.0, 1.0
		u = Clamp01(u)
		for range 12 {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) * 0.5
		}

		return sampleCurve(y1, y2, u)
	}
}

func sampleCurve(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func sampleCurveDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

// Clamp01 limits value to [0, 1].
func Clamp01(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

var namedCurves = map[string]Curve{
	"linear":                LinearCurve,
	"accelerate":            Accelerate,
	"decelerate":            Decelerate,
	"accelerate-decelerate": AccelerateDecelerate,
	"ease":                  Ease,
	"ease-in":               EaseIn,
	"ease-out":              EaseOut,
	"ease-in-out":           EaseInOut,
	"spring":                DefaultSpring,
}

// CurveByName resolves a curve from its configuration name
// (e.g. "decelerate", "ease-in-out", "spring").
func CurveByName(name string) (Curve, bool) {
	c, ok := namedCurves[name]
	return c, ok
}

// CurveNames lists the names accepted by CurveByName, sorted.
func CurveNames() []string {
	names := maps.Keys(namedCurves)
	slices.Sort(names)
	return names
}
