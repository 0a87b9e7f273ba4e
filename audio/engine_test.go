package audio

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// TestDetectBackendPriority verifies the first available tool wins
func TestDetectBackendPriority(t *testing.T) {
	available := map[string]string{"aplay": "/usr/bin/aplay", "ffplay": "/usr/bin/ffplay"}
	lookPath := func(name string) (string, error) {
		if p, ok := available[name]; ok {
			return p, nil
		}
		return "", errors.New("not found")
	}

	b, err := detectBackend(lookPath)
	if err != nil {
		t.Fatalf("detectBackend failed: %v", err)
	}
	if b.Type != BackendALSA || b.Path != "/usr/bin/aplay" {
		t.Errorf("Expected aplay backend, got %s at %s", b.Name, b.Path)
	}

	b.Args[0] = "mutated"
	if backendCandidates[2].Args[0] == "mutated" {
		t.Error("Expected detected args to be a copy")
	}
}

// TestDetectBackendNone verifies the sentinel when nothing is installed
func TestDetectBackendNone(t *testing.T) {
	_, err := detectBackend(func(string) (string, error) { return "", errors.New("not found") })
	if !errors.Is(err, ErrNoAudioBackend) {
		t.Errorf("Expected ErrNoAudioBackend, got %v", err)
	}
}

// TestDisabledEngine verifies a disabled engine starts silent and ignores cues
func TestDisabledEngine(t *testing.T) {
	ae := NewAudioEngine(Config{Enabled: false, MasterVolume: 1}, zerolog.Nop())
	if err := ae.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer ae.Stop()

	if ae.IsEnabled() {
		t.Error("Expected disabled engine")
	}
	if ae.Play(Cue{Sound: SoundGenerate}) {
		t.Error("Expected Play to refuse while disabled")
	}
	ae.Generated(nil)
	ae.Toggled(0, 2)
	ae.Cleared()

	if err := ae.Start(); !errors.Is(err, ErrRunning) {
		t.Errorf("Expected ErrRunning on second Start, got %v", err)
	}
}

// TestEngineListenerQueuesCues verifies listener callbacks reach the mixer
func TestEngineListenerQueuesCues(t *testing.T) {
	ae := NewAudioEngine(Config{Enabled: true, MasterVolume: 0.5}, zerolog.Nop())
	ae.running.Store(true)
	ae.attach(io.Discard)
	defer ae.Stop()

	ae.Toggled(4, 7)
	ae.Generated(nil)
	ae.Cleared()

	deadline := time.Now().Add(2 * time.Second)
	for {
		played, _ := ae.mixer.Stats()
		if played == 3 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("Expected 3 cues played, got %d", played)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// TestEngineMuteToggle verifies mute gates playback
func TestEngineMuteToggle(t *testing.T) {
	ae := NewAudioEngine(Config{Enabled: true, MasterVolume: 1}, zerolog.Nop())
	ae.running.Store(true)
	ae.attach(io.Discard)
	defer ae.Stop()

	if !ae.IsEnabled() {
		t.Fatal("Expected enabled engine")
	}
	if audible := ae.ToggleMute(); audible {
		t.Error("Expected first toggle to mute")
	}
	if ae.Play(Cue{Sound: SoundClear}) {
		t.Error("Expected muted engine to refuse cues")
	}
	if audible := ae.ToggleMute(); !audible {
		t.Error("Expected second toggle to unmute")
	}
}
