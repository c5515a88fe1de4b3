// Package progress implements the animation engine behind a circular percent
// indicator.
//
// The indicator has two visual modes: a determinate bar whose arc is
// proportional to Value/MaxValue, and an indeterminate spinner that rotates a
// fixed-length arc. The engine is a state machine over [AnimationState] that
// moves between the modes without visible jumps:
//
//	          Spin()                     StopSpinning()
//	Idle ──────────────► Spinning ─────────────────────► EndSpinning ──► Idle
//	 │ ▲                    │ ▲                               │
//	 │ │ value reached      │ └──────── Spin() ───────────────┘
//	 │ │                    │ SetValueAnimated()
//	 ▼ │                    ▼
//	Animating ◄──── EndSpinningStartAnimating
//
// All commands and frame ticks travel through one [dispatch.Queue], so the
// [AnimationContext] is only ever touched by the queue's consumer. Transitions
// are computed by the pure function [Transition]; the engine applies the
// returned [Effects] (observer callbacks, redraw requests, the next tick).
//
// Renderers read a consistent snapshot with [Indicator.Frame] after the
// surface's Invalidate is called.
package progress
