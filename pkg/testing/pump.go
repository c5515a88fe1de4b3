package testing

import "time"

// Runner delivers the messages due at its clock's current time.
// *progress.Indicator and *dispatch.Queue implement it.
type Runner interface {
	RunDue() int
}

// Pump runs the messages already due, then advances clock by step n times,
// running due messages after each step. It returns the number of messages
// delivered.
func Pump(clock *FakeClock, r Runner, step time.Duration, n int) int {
	delivered := r.RunDue()
	for range n {
		clock.Advance(step)
		delivered += r.RunDue()
	}
	return delivered
}

// PumpUntil is like Pump but stops as soon as done reports true, checking
// before every step. It returns the number of steps taken and whether done
// was satisfied within maxSteps.
func PumpUntil(clock *FakeClock, r Runner, step time.Duration, maxSteps int, done func() bool) (int, bool) {
	r.RunDue()
	for i := range maxSteps {
		if done() {
			return i, true
		}
		clock.Advance(step)
		r.RunDue()
	}
	return maxSteps, done()
}
