// Package animation provides the time and easing primitives used by the
// ringview animation engine.
//
// # Core Components
//
//   - [Curve]: an easing function mapping linear progress in [0, 1] to eased
//     progress. Includes [LinearCurve], [EaseInOut], [Decelerate],
//     [AccelerateDecelerate], [CubicBezier] and physics-based [SpringCurve].
//
//   - [Interpolation]: a start time, duration and curve. Evaluating it against a
//     clock reading yields the eased ratio used to move a scalar from one value
//     toward another.
//
//   - [Clock]: the time source. The engine reads time only through a Clock so
//     tests can drive animations with a fake clock.
//
// # Basic Usage
//
//	in := animation.Interpolation{
//	    Start:    clock.Now(),
//	    Duration: 900 * time.Millisecond,
//	    Curve:    animation.AccelerateDecelerate,
//	}
//	// on every frame
//	value := animation.Lerp(from, to, in.Eased(clock.Now()))
//	if in.Done(clock.Now()) {
//	    value = to
//	}
package animation
