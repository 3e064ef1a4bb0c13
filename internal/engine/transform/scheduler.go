package transform

import "sync"

// FrameScheduler coalesces deferred work to at most one execution per
// rendered frame. Schedule replaces any pending task, so however many
// pointer-move events arrive between frames, the expensive snap and
// alignment recomputation runs once. Each task carries a guard token
// (the active shape id); Flush drops the task if the token no longer
// matches, which is how a stale computation for a superseded gesture is
// cancelled. Cancellation is cooperative, a guard check, not a kill
// signal.
type FrameScheduler struct {
	mu      sync.Mutex
	token   string
	pending func()
}

// NewFrameScheduler creates an empty scheduler.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

// Schedule stores fn to run on the next Flush, replacing any pending
// task.
func (s *FrameScheduler) Schedule(token string, fn func()) {
	s.mu.Lock()
	s.token = token
	s.pending = fn
	s.mu.Unlock()
}

// Flush runs the pending task if its token matches activeToken, then
// clears it either way. Called once per rendered frame by the frontend.
func (s *FrameScheduler) Flush(activeToken string) {
	s.mu.Lock()
	fn := s.pending
	token := s.token
	s.pending = nil
	s.token = ""
	s.mu.Unlock()

	if fn != nil && token == activeToken {
		fn()
	}
}

// Cancel drops any pending task.
func (s *FrameScheduler) Cancel() {
	s.mu.Lock()
	s.pending = nil
	s.token = ""
	s.mu.Unlock()
}

// HasPending reports whether a task is waiting for the next frame.
func (s *FrameScheduler) HasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}
