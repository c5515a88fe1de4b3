package testing

import "sync"

// RecordingSurface is a renderable surface that records redraw requests.
type RecordingSurface struct {
	mu          sync.Mutex
	invalidated int

	// OnInvalidate, if set, runs inline on every Invalidate call.
	OnInvalidate func()
}

// Invalidate records a redraw request.
func (s *RecordingSurface) Invalidate() {
	s.mu.Lock()
	s.invalidated++
	hook := s.OnInvalidate
	s.mu.Unlock()
	if hook != nil {
		hook()
	}
}

// Invalidations returns the number of redraw requests so far.
func (s *RecordingSurface) Invalidations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invalidated
}

// Reset clears the redraw counter.
func (s *RecordingSurface) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidated = 0
}
