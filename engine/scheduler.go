package engine

import (
	"cmp"
	"slices"
	"time"
)

// AnyGeneration marks a task that stays valid across generations
// Such tasks must re-read current state when they run
const AnyGeneration uint64 = 0

// task is one deferred reveal step
type task struct {
	gen uint64
	due time.Time
	seq uint64
	fn  func()
}

// Scheduler holds staggered reveal tasks keyed by generation id
// Not safe for concurrent use; owned by the engine goroutine
type Scheduler struct {
	tasks  []task
	seq    uint64
	sorted bool
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{sorted: true}
}

// Schedule queues fn to run at due if gen is still current then
func (s *Scheduler) Schedule(gen uint64, due time.Time, fn func()) {
	s.seq++
	if n := len(s.tasks); n > 0 && s.sorted {
		last := s.tasks[n-1]
		if due.Before(last.due) {
			s.sorted = false
		}
	}
	s.tasks = append(s.tasks, task{gen: gen, due: due, seq: s.seq, fn: fn})
}

// Tick runs every task due at or before now, in due order then schedule order
// Tasks of a stale generation are discarded without running
// Returns the number of tasks run
func (s *Scheduler) Tick(now time.Time, current uint64) int {
	s.sort()

	n := 0
	for n < len(s.tasks) && !s.tasks[n].due.After(now) {
		n++
	}
	if n == 0 {
		return 0
	}

	due := s.tasks[:n:n]
	s.tasks = slices.Clone(s.tasks[n:])

	ran := 0
	for _, t := range due {
		if t.gen == current || t.gen == AnyGeneration {
			t.fn()
			ran++
		}
	}
	return ran
}

// Flush runs every pending valid task regardless of due time
func (s *Scheduler) Flush(current uint64) int {
	if len(s.tasks) == 0 {
		return 0
	}
	return s.Tick(s.tasks[s.latest()].due, current)
}

// Prune drops tasks that no longer belong to current
func (s *Scheduler) Prune(current uint64) int {
	before := len(s.tasks)
	s.tasks = slices.DeleteFunc(s.tasks, func(t task) bool {
		return t.gen != current && t.gen != AnyGeneration
	})
	return before - len(s.tasks)
}

// Cancel drops every task scheduled under gen
func (s *Scheduler) Cancel(gen uint64) int {
	before := len(s.tasks)
	s.tasks = slices.DeleteFunc(s.tasks, func(t task) bool {
		return t.gen == gen
	})
	return before - len(s.tasks)
}

// Len returns the pending task count
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// NextDue returns the earliest due time and whether any task is pending
func (s *Scheduler) NextDue() (time.Time, bool) {
	if len(s.tasks) == 0 {
		return time.Time{}, false
	}
	s.sort()
	return s.tasks[0].due, true
}

func (s *Scheduler) sort() {
	if s.sorted {
		return
	}
	slices.SortStableFunc(s.tasks, func(a, b task) int {
		if c := a.due.Compare(b.due); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	s.sorted = true
}

func (s *Scheduler) latest() int {
	s.sort()
	return len(s.tasks) - 1
}
