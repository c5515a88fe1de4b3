package testing

import (
	"testing"
	"time"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	if !clk.Now().Equal(Epoch) {
		t.Fatalf("new clock reads %v, want %v", clk.Now(), Epoch)
	}

	clk.Advance(100 * time.Millisecond)
	clk.Advance(-time.Second)
	if got := clk.Elapsed(); got != 100*time.Millisecond {
		t.Errorf("Elapsed() = %v, want 100ms", got)
	}
	if got := clk.Now().Sub(Epoch); got != 100*time.Millisecond {
		t.Errorf("Now() - Epoch = %v, want 100ms", got)
	}
}

func TestRecordingSurface(t *testing.T) {
	hooked := 0
	s := &RecordingSurface{OnInvalidate: func() { hooked++ }}

	s.Invalidate()
	s.Invalidate()
	if got := s.Invalidations(); got != 2 {
		t.Errorf("Invalidations() = %d, want 2", got)
	}
	if hooked != 2 {
		t.Errorf("hook ran %d times, want 2", hooked)
	}

	s.Reset()
	if got := s.Invalidations(); got != 0 {
		t.Errorf("Invalidations() after Reset = %d, want 0", got)
	}
}
