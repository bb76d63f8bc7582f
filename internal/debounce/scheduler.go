// Package debounce coalesces rapid triggers into a single delayed callback.
package debounce

import (
	"sync"
	"time"
)

// Scheduler arms a timer per Schedule call, cancelling any previously armed
// one, so only the most recent callback ever fires. There is no queueing.
type Scheduler struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	stopped bool
}

// New creates a scheduler with the given delay.
func New(delay time.Duration) *Scheduler {
	return &Scheduler{delay: delay}
}

// Schedule cancels any pending invocation and arms a new timer; fn runs with
// no arguments after the delay elapses without another Schedule call.
func (s *Scheduler) Schedule(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, fn)
}

// Cancel drops any pending invocation without preventing later Schedule
// calls.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Stop cancels any pending invocation and rejects further scheduling. Safe
// to call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Delay reports the configured debounce interval.
func (s *Scheduler) Delay() time.Duration {
	return s.delay
}
