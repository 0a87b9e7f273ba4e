package engine

import (
	"testing"
	"time"
)

func TestPausableClockFreezesTime(t *testing.T) {
	mock := NewMockTimeProvider(epoch)
	pc := NewPausableClock(mock)

	mock.Advance(time.Second)
	if got := pc.Now(); !got.Equal(epoch.Add(time.Second)) {
		t.Errorf("Expected %v, got %v", epoch.Add(time.Second), got)
	}

	pc.Pause()
	pc.Pause()
	mock.Advance(5 * time.Second)
	if got := pc.Now(); !got.Equal(epoch.Add(time.Second)) {
		t.Errorf("Expected frozen time %v, got %v", epoch.Add(time.Second), got)
	}
	if d := pc.TotalPauseDuration(); d != 5*time.Second {
		t.Errorf("Expected 5s ongoing pause, got %v", d)
	}

	pc.Resume()
	mock.Advance(2 * time.Second)
	if got := pc.Now(); !got.Equal(epoch.Add(3 * time.Second)) {
		t.Errorf("Expected %v after resume, got %v", epoch.Add(3*time.Second), got)
	}
	if pc.IsPaused() {
		t.Error("Expected clock running after resume")
	}
}

func TestPausableClockToggle(t *testing.T) {
	mock := NewMockTimeProvider(epoch)
	pc := NewPausableClock(mock)

	if !pc.Toggle() {
		t.Error("Expected first toggle to pause")
	}
	mock.Advance(time.Minute)
	if pc.Toggle() {
		t.Error("Expected second toggle to resume")
	}
	if d := pc.TotalPauseDuration(); d != time.Minute {
		t.Errorf("Expected 1m total pause, got %v", d)
	}
}

func TestPausedRevealHoldsTasks(t *testing.T) {
	mock := NewMockTimeProvider(epoch)
	pc := NewPausableClock(mock)
	e, _, _ := newTestEngine(t, 10, 0, true)
	e.clock = pc

	e.Generate()
	pc.Pause()
	mock.Advance(time.Hour)
	if n := e.Tick(); n != 0 {
		t.Errorf("Expected no reveal while paused, got %d", n)
	}
	pc.Resume()
	mock.Advance(time.Second)
	if n := e.Tick(); n != 100 {
		t.Errorf("Expected full reveal after resume, got %d", n)
	}
}

func TestMockTimeProvider(t *testing.T) {
	mock := NewMockTimeProvider(epoch)
	mock.Advance(90 * time.Minute)
	if got := mock.Now(); !got.Equal(epoch.Add(90 * time.Minute)) {
		t.Errorf("Expected %v, got %v", epoch.Add(90*time.Minute), got)
	}
	later := epoch.Add(48 * time.Hour)
	mock.Set(later)
	if got := mock.Now(); !got.Equal(later) {
		t.Errorf("Expected %v after Set, got %v", later, got)
	}
	if NewTimeProvider().Now().IsZero() {
		t.Error("Expected real time provider to return a non-zero time")
	}
}
