package engine

import (
	"testing"
	"time"
)

func TestSchedulerRunsInDueOrder(t *testing.T) {
	s := NewScheduler()
	var order []int

	s.Schedule(1, epoch.Add(30*time.Millisecond), func() { order = append(order, 3) })
	s.Schedule(1, epoch.Add(10*time.Millisecond), func() { order = append(order, 1) })
	s.Schedule(1, epoch.Add(10*time.Millisecond), func() { order = append(order, 2) })
	s.Schedule(1, epoch.Add(50*time.Millisecond), func() { order = append(order, 4) })

	if ran := s.Tick(epoch.Add(30*time.Millisecond), 1); ran != 3 {
		t.Errorf("Expected 3 tasks to run, got %d", ran)
	}
	want := []int{1, 2, 3}
	if len(order) != len(want) {
		t.Fatalf("Expected order %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Expected order %v, got %v", want, order)
			break
		}
	}

	due, ok := s.NextDue()
	if !ok || !due.Equal(epoch.Add(50*time.Millisecond)) {
		t.Errorf("Expected next due at +50ms, got %v (ok=%v)", due, ok)
	}
	if s.Len() != 1 {
		t.Errorf("Expected 1 pending task, got %d", s.Len())
	}
}

func TestSchedulerSkipsStaleGeneration(t *testing.T) {
	s := NewScheduler()
	ran := 0
	s.Schedule(1, epoch, func() { ran++ })
	s.Schedule(2, epoch, func() { ran++ })
	s.Schedule(AnyGeneration, epoch, func() { ran++ })

	if n := s.Tick(epoch, 2); n != 2 {
		t.Errorf("Expected 2 tasks to run for generation 2, got %d", n)
	}
	if ran != 2 {
		t.Errorf("Expected stale task to be skipped, ran %d", ran)
	}
	if s.Len() != 0 {
		t.Errorf("Expected stale task to be discarded, %d pending", s.Len())
	}
}

func TestSchedulerPruneAndFlush(t *testing.T) {
	s := NewScheduler()
	ran := 0
	for i := 0; i < 5; i++ {
		s.Schedule(1, epoch.Add(time.Duration(i)*time.Hour), func() { ran++ })
	}
	s.Schedule(AnyGeneration, epoch.Add(time.Minute), func() { ran++ })
	s.Schedule(2, epoch.Add(time.Minute), func() { ran++ })

	if dropped := s.Prune(2); dropped != 5 {
		t.Errorf("Expected 5 tasks pruned, got %d", dropped)
	}
	if n := s.Flush(2); n != 2 || ran != 2 {
		t.Errorf("Expected flush to run 2 tasks, got %d (ran %d)", n, ran)
	}
	if _, ok := s.NextDue(); ok {
		t.Error("Expected no pending task after flush")
	}
	if n := s.Flush(2); n != 0 {
		t.Errorf("Expected empty flush to run nothing, got %d", n)
	}
}

func TestSchedulerTaskMaySchedule(t *testing.T) {
	s := NewScheduler()
	ran := 0
	s.Schedule(1, epoch, func() {
		s.Schedule(1, epoch.Add(time.Millisecond), func() { ran++ })
	})

	s.Tick(epoch, 1)
	if s.Len() != 1 {
		t.Fatalf("Expected nested task queued, got %d pending", s.Len())
	}
	s.Tick(epoch.Add(time.Millisecond), 1)
	if ran != 1 {
		t.Errorf("Expected nested task to run once, ran %d", ran)
	}

}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	for i := 0; i < 3; i++ {
		s.Schedule(AnyGeneration, epoch.Add(time.Duration(i)*time.Millisecond), func() {})
	}
	s.Schedule(4, epoch, func() {})

	if dropped := s.Cancel(AnyGeneration); dropped != 3 {
		t.Errorf("Expected 3 tasks cancelled, got %d", dropped)
	}
	if s.Len() != 1 {
		t.Errorf("Expected generation 4 task to remain, got %d pending", s.Len())
	}
	if dropped := s.Cancel(7); dropped != 0 {
		t.Errorf("Expected nothing cancelled for unknown generation, got %d", dropped)
	}
}
