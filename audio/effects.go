package audio

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/pixelweave/constants"
	"github.com/lixenwraith/pixelweave/palette"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

const sampleRate = beep.SampleRate(constants.AudioSampleRate)

// paintScale maps palette colors to a major pentatonic ladder in semitones above C5
var paintScale = [palette.Size]float64{0, 2, 4, 7, 9, 12, 14, 16, 19, 21}

const paintBaseFreq = 523.25

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a streamer of the given wave, ending after duration
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = -1.0
			if o.phase < 0.5 {
				val = 1.0
			}
		case WaveTriangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	releaseStart int
	release      int
	total        int
}

// NewEnvelope shapes s with attack and release ramps over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer:     s,
		attack:       att,
		release:      rel,
		releaseStart: max(total-rel, att),
		total:        total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		switch {
		case e.position < e.attack:
			vol = float64(e.position) / float64(e.attack)
		case e.position >= e.releaseStart && e.release > 0:
			vol = max(float64(e.total-e.position)/float64(e.release), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with linear gain vol
// math.Log2(0) is -Inf, zero volume maps to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// PaintFrequency returns the blip pitch for c
func PaintFrequency(c palette.Color) float64 {
	return paintBaseFreq * math.Pow(2, paintScale[c]/12)
}

// CreatePaintSound generates a short blip pitched by color
func CreatePaintSound(c palette.Color) beep.Streamer {
	osc := NewOscillator(PaintFrequency(c), constants.PaintCueDuration, WaveTriangle, sampleRate)
	return NewEnvelope(osc, constants.PaintCueDuration, constants.PaintCueAttack, constants.PaintCueRelease, sampleRate)
}

// CreateGenerateSound generates a rising fifth chime
func CreateGenerateSound() beep.Streamer {
	note := func(freq float64) beep.Streamer {
		fund := NewOscillator(freq, constants.GenerateCueNote, WaveSine, sampleRate)
		over := NewOscillator(freq*2, constants.GenerateCueNote, WaveSine, sampleRate)
		mixed := beep.Mix(newVolume(fund, 0.7), newVolume(over, 0.3))
		return NewEnvelope(mixed, constants.GenerateCueNote, constants.GenerateCueAttack, constants.GenerateCueRelease, sampleRate)
	}
	return beep.Seq(note(660), note(990))
}

// CreateClearSound generates a soft noise sweep
func CreateClearSound() beep.Streamer {
	noise := NewOscillator(0, constants.ClearCueDuration, WaveNoise, sampleRate)
	shaped := NewEnvelope(noise, constants.ClearCueDuration, constants.ClearCueAttack, constants.ClearCueRelease, sampleRate)
	return newVolume(shaped, 0.4)
}

// GetSoundEffect returns the streamer for cue, nil for unknown sounds
func GetSoundEffect(cue Cue) beep.Streamer {
	switch cue.Sound {
	case SoundPaint:
		if !cue.Color.Valid() {
			return nil
		}
		return CreatePaintSound(cue.Color)
	case SoundGenerate:
		return CreateGenerateSound()
	case SoundClear:
		return CreateClearSound()
	}
	return nil
}

// render drains s into a mono buffer
func render(s beep.Streamer) floatBuffer {
	var out floatBuffer
	chunk := make([][2]float64, 512)
	for {
		n, ok := s.Stream(chunk)
		for i := 0; i < n; i++ {
			out = append(out, (chunk[i][0]+chunk[i][1])/2)
		}
		if !ok {
			return out
		}
	}
}

// soundCache stores rendered unity-gain buffers
type soundCache struct {
	mu    sync.RWMutex
	store map[Cue]floatBuffer
}

func newSoundCache() *soundCache {
	return &soundCache{store: make(map[Cue]floatBuffer)}
}

// get returns the cached buffer or renders it on demand
// Noise cues are cached too, one sweep is reused
func (c *soundCache) get(cue Cue) floatBuffer {
	c.mu.RLock()
	buf, ok := c.store[cue]
	c.mu.RUnlock()
	if ok {
		return buf
	}

	s := GetSoundEffect(cue)
	if s == nil {
		return nil
	}
	buf = render(s)

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.store[cue]; ok {
		return existing
	}
	c.store[cue] = buf
	return buf
}

// preload renders every cue up front
func (c *soundCache) preload() {
	for _, col := range palette.All() {
		c.get(Cue{Sound: SoundPaint, Color: col})
	}
	c.get(Cue{Sound: SoundGenerate})
	c.get(Cue{Sound: SoundClear})
}
