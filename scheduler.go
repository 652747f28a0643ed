package gesture

import (
	"sort"
	"sync"
	"time"
)

// Timer is a pending single-shot task.
type Timer interface {
	// Stop cancels the task. It reports whether the task was still pending.
	Stop() bool
}

// Scheduler runs deferred tasks for the hold timer.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// WallScheduler schedules with time.AfterFunc. Tasks fire on their own
// goroutine.
type WallScheduler struct{}

// AfterFunc implements Scheduler.
func (WallScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualScheduler is a scheduler driven by an explicit clock. Tasks fire only
// from Advance or AdvanceTo, on the caller's goroutine. Frame-driven hosts
// advance it once per frame; tests advance it to exact instants.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Time
	seq   uint64
	tasks []*manualTask
}

type manualTask struct {
	s   *ManualScheduler
	at  time.Time
	seq uint64
	fn  func()
}

// NewManualScheduler returns a scheduler whose clock starts at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// Now returns the scheduler's clock.
func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of tasks waiting to fire.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// AfterFunc implements Scheduler.
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTask{s: s, at: s.now.Add(d), seq: s.seq, fn: f}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves the clock forward by d, firing due tasks.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.AdvanceTo(s.Now().Add(d))
}

// AdvanceTo moves the clock to t, firing every task due at or before t in
// deadline order. The clock never moves backward.
func (s *ManualScheduler) AdvanceTo(t time.Time) {
	for {
		s.mu.Lock()
		sort.Slice(s.tasks, func(i, j int) bool {
			if s.tasks[i].at.Equal(s.tasks[j].at) {
				return s.tasks[i].seq < s.tasks[j].seq
			}
			return s.tasks[i].at.Before(s.tasks[j].at)
		})
		if len(s.tasks) == 0 || s.tasks[0].at.After(t) {
			if t.After(s.now) {
				s.now = t
			}
			s.mu.Unlock()
			return
		}
		task := s.tasks[0]
		s.tasks = s.tasks[1:]
		if task.at.After(s.now) {
			s.now = task.at
		}
		s.mu.Unlock()

		// Run unlocked so the task may schedule or cancel others.
		task.fn()
	}
}

func (t *manualTask) Stop() bool {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, other := range s.tasks {
		if other == t {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}
