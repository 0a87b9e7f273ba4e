package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/lixenwraith/pixelweave/constants"
)

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

// TestMixerWritesSilence verifies an idle mixer emits zeroed frames
func TestMixerWritesSilence(t *testing.T) {
	var out bytes.Buffer
	m := NewMixer(&out, newSoundCache())

	mix := make([]float64, constants.AudioBufferSamples)
	frame := make([]byte, constants.AudioBufferSamples*constants.AudioBytesPerFrame)
	if err := m.writeFrame(mix, frame); err != nil {
		t.Fatalf("writeFrame failed: %v", err)
	}
	if out.Len() != len(frame) {
		t.Fatalf("Expected %d bytes, got %d", len(frame), out.Len())
	}
	for i, b := range out.Bytes() {
		if b != 0 {
			t.Fatalf("Expected silence, byte %d is %d", i, b)
		}
	}
}

// TestMixerVoiceLifecycle verifies a voice plays to completion and is retired
func TestMixerVoiceLifecycle(t *testing.T) {
	var out bytes.Buffer
	cache := newSoundCache()
	m := NewMixer(&out, cache)

	cue := Cue{Sound: SoundPaint, Color: 0}
	m.admit(playRequest{cue: cue, volume: 1})
	if len(m.active) != 1 {
		t.Fatalf("Expected 1 active voice, got %d", len(m.active))
	}

	mix := make([]float64, constants.AudioBufferSamples)
	frame := make([]byte, constants.AudioBufferSamples*constants.AudioBytesPerFrame)
	frames := (len(cache.get(cue)) + constants.AudioBufferSamples - 1) / constants.AudioBufferSamples
	for i := 0; i < frames; i++ {
		if err := m.writeFrame(mix, frame); err != nil {
			t.Fatalf("writeFrame failed: %v", err)
		}
	}
	if len(m.active) != 0 {
		t.Errorf("Expected voice retired after %d frames, %d active", frames, len(m.active))
	}
	if played, _ := m.Stats(); played != 1 {
		t.Errorf("Expected played=1, got %d", played)
	}
}

// TestMixerVoiceLimit verifies the oldest voice is replaced when all are busy
func TestMixerVoiceLimit(t *testing.T) {
	m := NewMixer(&bytes.Buffer{}, newSoundCache())
	for i := 0; i < constants.AudioMaxVoices+3; i++ {
		m.admit(playRequest{cue: Cue{Sound: SoundGenerate}, volume: 1})
	}
	if len(m.active) != constants.AudioMaxVoices {
		t.Errorf("Expected %d voices, got %d", constants.AudioMaxVoices, len(m.active))
	}
}

// TestMixerQueueOverflow verifies requests beyond the queue are dropped
func TestMixerQueueOverflow(t *testing.T) {
	m := NewMixer(&bytes.Buffer{}, newSoundCache())
	for i := 0; i < constants.AudioQueueSize; i++ {
		if !m.Play(Cue{Sound: SoundClear}, 1) {
			t.Fatalf("Expected request %d queued", i)
		}
	}
	if m.Play(Cue{Sound: SoundClear}, 1) {
		t.Error("Expected overflow request dropped")
	}
	if _, dropped := m.Stats(); dropped != 1 {
		t.Errorf("Expected dropped=1, got %d", dropped)
	}

	m.Stop()
	if m.Play(Cue{Sound: SoundClear}, 1) {
		t.Error("Expected stopped mixer to refuse requests")
	}
}

// TestMixerPipeError verifies write failures wrap ErrPipeClosed
func TestMixerPipeError(t *testing.T) {
	m := NewMixer(failWriter{}, newSoundCache())
	err := m.writeFrame(make([]float64, 4), make([]byte, 16))
	if !errors.Is(err, ErrPipeClosed) {
		t.Errorf("Expected ErrPipeClosed, got %v", err)
	}
}

// TestFloatToBytesClip verifies limiting keeps samples inside int16
func TestFloatToBytesClip(t *testing.T) {
	out := make([]byte, 3*constants.AudioBytesPerFrame)
	floatToBytes([]float64{0, 5, -5}, out)

	sample := func(i int) int16 {
		return int16(binary.LittleEndian.Uint16(out[i*constants.AudioBytesPerFrame:]))
	}
	if sample(0) != 0 {
		t.Errorf("Expected 0, got %d", sample(0))
	}
	if s := sample(1); s <= 0 || s > 32767 {
		t.Errorf("Expected positive clipped sample, got %d", s)
	}
	if s := sample(2); s >= 0 {
		t.Errorf("Expected negative clipped sample, got %d", s)
	}
	if l, r := sample(1), int16(binary.LittleEndian.Uint16(out[constants.AudioBytesPerFrame+2:])); l != r {
		t.Errorf("Expected equal channels, got %d and %d", l, r)
	}
}
