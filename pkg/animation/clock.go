package animation

import "time"

// Clock provides time for animations. The default implementation uses
// system time. Tests inject a fake clock to control animation timing
// deterministically.
type Clock interface {
	Now() time.Time
}

// realClock uses system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// SystemClock is the wall-clock time source.
var SystemClock Clock = realClock{}

// Since returns the time elapsed on c since t.
func Since(c Clock, t time.Time) time.Duration {
	return c.Now().Sub(t)
}
