package testing

import (
	"sync"
	"time"

	"github.com/go-drift/ringview/pkg/animation"
)

// Epoch is the reading of a new FakeClock.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

var _ animation.Clock = (*FakeClock)(nil)

// FakeClock is an animation.Clock that only moves when told to. It is safe
// for use from the test goroutine and an indicator's consumer at once.
type FakeClock struct {
	mu      sync.Mutex
	elapsed time.Duration
}

// NewFakeClock returns a clock reading Epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{}
}

func (c *FakeClock) Now() time.Time {
	return Epoch.Add(c.Elapsed())
}

// Elapsed returns how far the clock has been advanced since Epoch.
func (c *FakeClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}

// Advance moves the clock forward by d. Negative d is ignored; the clock
// never runs backwards.
func (c *FakeClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.elapsed += d
	c.mu.Unlock()
}

