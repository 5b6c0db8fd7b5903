package repl

import "sync/atomic"

// StreamState tracks the one in-flight send. The cancelled flag is the
// only state shared with the interrupt handler; the handler only ever
// flips it false->true and the stream controller only reads it, so two
// atomic booleans are all the synchronization needed.
type StreamState struct {
	active    atomic.Bool
	cancelled atomic.Bool
}

// NewStreamState returns an idle state.
func NewStreamState() *StreamState {
	return &StreamState{}
}

// Begin marks a send active and resets any stale cancellation.
func (s *StreamState) Begin() {
	s.cancelled.Store(false)
	s.active.Store(true)
}

// Finish resets both flags. It runs on every exit path of a send.
func (s *StreamState) Finish() {
	s.active.Store(false)
	s.cancelled.Store(false)
}

// Cancel requests cancellation of the in-flight send. It reports
// whether a send was active; when none is, the signal has no effect at
// this layer.
func (s *StreamState) Cancel() bool {
	if !s.active.Load() {
		return false
	}
	s.cancelled.Store(true)
	return true
}

// Active reports whether a send is in flight.
func (s *StreamState) Active() bool {
	return s.active.Load()
}

// Cancelled reports whether the in-flight send was asked to stop.
func (s *StreamState) Cancelled() bool {
	return s.cancelled.Load()
}
