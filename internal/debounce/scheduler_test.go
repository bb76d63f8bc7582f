package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fireRecorder counts callback invocations and remembers the last payload.
type fireRecorder struct {
	mu    sync.Mutex
	count int
	last  string
}

func (r *fireRecorder) record(v string) func() {
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.count++
		r.last = v
	}
}

func (r *fireRecorder) snapshot() (int, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count, r.last
}

func TestScheduleCoalescesRapidCalls(t *testing.T) {
	s := New(40 * time.Millisecond)
	rec := &fireRecorder{}

	s.Schedule(rec.record("a"))
	time.Sleep(10 * time.Millisecond)
	s.Schedule(rec.record("ab"))
	time.Sleep(10 * time.Millisecond)
	s.Schedule(rec.record("abc"))

	time.Sleep(120 * time.Millisecond)

	count, last := rec.snapshot()
	assert.Equal(t, 1, count, "only the most recent scheduled call fires")
	assert.Equal(t, "abc", last)
}

func TestScheduleFiresAfterDelay(t *testing.T) {
	s := New(20 * time.Millisecond)
	rec := &fireRecorder{}

	s.Schedule(rec.record("x"))

	count, _ := rec.snapshot()
	assert.Equal(t, 0, count, "callback must not fire before the delay")

	time.Sleep(80 * time.Millisecond)
	count, _ = rec.snapshot()
	assert.Equal(t, 1, count)
}

func TestStopCancelsPending(t *testing.T) {
	s := New(20 * time.Millisecond)
	rec := &fireRecorder{}

	s.Schedule(rec.record("x"))
	s.Stop()

	time.Sleep(80 * time.Millisecond)
	count, _ := rec.snapshot()
	assert.Equal(t, 0, count)
}

func TestCancelAllowsRescheduling(t *testing.T) {
	s := New(20 * time.Millisecond)
	rec := &fireRecorder{}

	s.Schedule(rec.record("dropped"))
	s.Cancel()
	s.Schedule(rec.record("kept"))

	time.Sleep(80 * time.Millisecond)
	count, last := rec.snapshot()
	assert.Equal(t, 1, count)
	assert.Equal(t, "kept", last)
}

func TestScheduleAfterStopIsNoop(t *testing.T) {
	s := New(10 * time.Millisecond)
	rec := &fireRecorder{}

	s.Stop()
	s.Schedule(rec.record("x"))

	time.Sleep(60 * time.Millisecond)
	count, _ := rec.snapshot()
	assert.Equal(t, 0, count)
}

func TestDelay(t *testing.T) {
	s := New(300 * time.Millisecond)
	assert.Equal(t, 300*time.Millisecond, s.Delay())
}
