package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/pixelweave/constants"
	"github.com/lixenwraith/pixelweave/palette"
)

// TestOscillatorSine verifies sine samples stay in range and the stream ends on time
func TestOscillatorSine(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440, 10*time.Millisecond, WaveSine, rate)

	samples := make([][2]float64, 1000)
	n, ok := osc.Stream(samples)
	if !ok {
		t.Fatal("Expected stream to return ok=true")
	}
	if n != rate.N(10*time.Millisecond) {
		t.Errorf("Expected %d samples, got %d", rate.N(10*time.Millisecond), n)
	}
	for i := 0; i < n; i++ {
		if samples[i][0] < -1 || samples[i][0] > 1 {
			t.Fatalf("Sample %d out of range: %f", i, samples[i][0])
		}
		if samples[i][0] != samples[i][1] {
			t.Fatalf("Sample %d channels differ", i)
		}
	}

	n, ok = osc.Stream(samples)
	if n != 0 || ok {
		t.Errorf("Expected drained stream (0,false), got (%d,%v)", n, ok)
	}
}

// TestOscillatorTriangle verifies triangle peaks at half phase
func TestOscillatorTriangle(t *testing.T) {
	rate := beep.SampleRate(100)
	osc := NewOscillator(1, time.Second, WaveTriangle, rate)

	samples := make([][2]float64, 100)
	osc.Stream(samples)
	if samples[0][0] != -1 {
		t.Errorf("Expected -1 at phase 0, got %f", samples[0][0])
	}
	if math.Abs(samples[50][0]-1) > 1e-9 {
		t.Errorf("Expected 1 at phase 0.5, got %f", samples[50][0])
	}
}

// TestEnvelopeAttack verifies the first sample is silent and attack ramps up
func TestEnvelopeAttack(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, 100*time.Millisecond, WaveSquare, rate)
	env := NewEnvelope(osc, 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, rate)

	samples := make([][2]float64, 100)
	n, _ := env.Stream(samples)
	if n != 100 {
		t.Fatalf("Expected 100 samples, got %d", n)
	}
	if samples[0][0] != 0 {
		t.Errorf("Expected silent first sample, got %f", samples[0][0])
	}
	if samples[5][0] != 0.5 {
		t.Errorf("Expected half gain mid attack, got %f", samples[5][0])
	}
	if samples[50][0] != 1 {
		t.Errorf("Expected full gain in sustain, got %f", samples[50][0])
	}
	if samples[99][0] >= samples[90][0] {
		t.Errorf("Expected release to decay, got %f >= %f", samples[99][0], samples[90][0])
	}
}

// TestPaintFrequency verifies each palette color has a distinct ascending pitch
func TestPaintFrequency(t *testing.T) {
	prev := 0.0
	for _, c := range palette.All() {
		f := PaintFrequency(c)
		if f <= prev {
			t.Errorf("Expected pitch of %s above %f, got %f", c, prev, f)
		}
		prev = f
	}
	if math.Abs(PaintFrequency(0)-paintBaseFreq) > 1e-9 {
		t.Errorf("Expected first color at base pitch, got %f", PaintFrequency(0))
	}
}

// TestGetSoundEffect verifies every cue renders to its expected length
func TestGetSoundEffect(t *testing.T) {
	tests := []struct {
		cue  Cue
		want time.Duration
	}{
		{Cue{Sound: SoundPaint, Color: 3}, constants.PaintCueDuration},
		{Cue{Sound: SoundGenerate}, 2 * constants.GenerateCueNote},
		{Cue{Sound: SoundClear}, constants.ClearCueDuration},
	}
	for _, tt := range tests {
		s := GetSoundEffect(tt.cue)
		if s == nil {
			t.Fatalf("Expected streamer for %+v", tt.cue)
		}
		buf := render(s)
		if want := sampleRate.N(tt.want); len(buf) != want {
			t.Errorf("Expected %d samples for %+v, got %d", want, tt.cue, len(buf))
		}
	}
}

// TestGetSoundEffectInvalid verifies unknown cues yield nil
func TestGetSoundEffectInvalid(t *testing.T) {
	if s := GetSoundEffect(Cue{Sound: SoundType(99)}); s != nil {
		t.Error("Expected nil for unknown sound")
	}
	if s := GetSoundEffect(Cue{Sound: SoundPaint, Color: palette.Color(palette.Size)}); s != nil {
		t.Error("Expected nil for color outside palette")
	}
}

// TestNewVolumeZero verifies zero volume silences the stream
func TestNewVolumeZero(t *testing.T) {
	s := newVolume(NewOscillator(0, 10*time.Millisecond, WaveSquare, sampleRate), 0)
	for i, v := range render(s) {
		if v != 0 {
			t.Fatalf("Expected silence at %d, got %f", i, v)
		}
	}
}

// TestSoundCache verifies buffers are rendered once and shared
func TestSoundCache(t *testing.T) {
	c := newSoundCache()
	cue := Cue{Sound: SoundPaint, Color: 1}
	a := c.get(cue)
	b := c.get(cue)
	if len(a) == 0 {
		t.Fatal("Expected rendered buffer")
	}
	if &a[0] != &b[0] {
		t.Error("Expected cached buffer to be reused")
	}
	if c.get(Cue{Sound: SoundType(42)}) != nil {
		t.Error("Expected nil buffer for unknown cue")
	}
}
