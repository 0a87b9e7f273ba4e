package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/pixelweave/constants"
	"github.com/lixenwraith/pixelweave/core"
)

// voice tracks a playing cue
type voice struct {
	buffer floatBuffer
	pos    int
	volume float64
}

type playRequest struct {
	cue    Cue
	volume float64
}

// Mixer sums queued cues and writes s16le stereo frames to output
type Mixer struct {
	output io.Writer
	cache  *soundCache

	playQueue chan playRequest
	stopChan  chan struct{}
	stopped   atomic.Bool

	// Accessed only by mix goroutine
	active []voice

	statsMu sync.Mutex
	played  uint64
	dropped uint64

	errChan chan error
}

// NewMixer creates a mixer writing to out
func NewMixer(out io.Writer, cache *soundCache) *Mixer {
	return &Mixer{
		output:    out,
		cache:     cache,
		playQueue: make(chan playRequest, constants.AudioQueueSize),
		stopChan:  make(chan struct{}),
		active:    make([]voice, 0, constants.AudioMaxVoices),
		errChan:   make(chan error, 1),
	}
}

// Start begins the mixing loop
func (m *Mixer) Start() {
	core.Go(func() { m.loop(time.NewTicker(constants.AudioBufferDuration)) })
}

// Stop signals the mixer to halt
func (m *Mixer) Stop() {
	if m.stopped.CompareAndSwap(false, true) {
		close(m.stopChan)
	}
}

// Play queues cue at volume, dropped when the queue is full
func (m *Mixer) Play(cue Cue, volume float64) bool {
	if m.stopped.Load() {
		return false
	}
	select {
	case m.playQueue <- playRequest{cue: cue, volume: volume}:
		return true
	default:
		m.statsMu.Lock()
		m.dropped++
		m.statsMu.Unlock()
		return false
	}
}

// Errors returns channel for pipe errors
func (m *Mixer) Errors() <-chan error {
	return m.errChan
}

func (m *Mixer) loop(ticker *time.Ticker) {
	defer ticker.Stop()

	mixBuf := make([]float64, constants.AudioBufferSamples)
	outBytes := make([]byte, constants.AudioBufferSamples*constants.AudioBytesPerFrame)

	for {
		select {
		case <-m.stopChan:
			return

		case req := <-m.playQueue:
			m.admit(req)

		case <-ticker.C:
			if err := m.writeFrame(mixBuf, outBytes); err != nil {
				select {
				case m.errChan <- err:
				default:
				}
				return
			}
		}
	}
}

// admit starts a voice for req, the oldest voice is replaced when all are busy
func (m *Mixer) admit(req playRequest) {
	buf := m.cache.get(req.cue)
	if len(buf) == 0 {
		return
	}
	if len(m.active) >= constants.AudioMaxVoices {
		m.active = m.active[1:]
	}
	m.active = append(m.active, voice{buffer: buf, volume: req.volume})

	m.statsMu.Lock()
	m.played++
	m.statsMu.Unlock()
}

// writeFrame mixes one buffer period and writes it, silence keeps the pipe alive
func (m *Mixer) writeFrame(mixBuf []float64, out []byte) error {
	clear(mixBuf)
	m.active = m.mixActive(mixBuf)
	floatToBytes(mixBuf, out)

	if _, err := m.output.Write(out); err != nil {
		return fmt.Errorf("%w: %v", ErrPipeClosed, err)
	}
	return nil
}

// mixActive mixes all active voices into buf, returns voices still sounding
func (m *Mixer) mixActive(buf []float64) []voice {
	remaining := m.active[:0]
	for i := range m.active {
		v := &m.active[i]
		for j := 0; j < len(buf) && v.pos < len(v.buffer); j++ {
			buf[j] += v.buffer[v.pos] * v.volume
			v.pos++
		}
		if v.pos < len(v.buffer) {
			remaining = append(remaining, *v)
		}
	}
	return remaining
}

// floatToBytes converts float64 mono to interleaved stereo int16 LE bytes
// Applies soft limiting before hard clip
func floatToBytes(in []float64, out []byte) {
	for i, v := range in {
		if v > 0.8 {
			v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
		} else if v < -0.8 {
			v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
		}
		v = min(max(v, -1.0), 1.0)

		s := uint16(int16(v * 32767))
		idx := i * constants.AudioBytesPerFrame
		binary.LittleEndian.PutUint16(out[idx:], s)   // L
		binary.LittleEndian.PutUint16(out[idx+2:], s) // R
	}
}

// Stats returns played and dropped counts
func (m *Mixer) Stats() (played, dropped uint64) {
	m.statsMu.Lock()
	defer m.statsMu.Unlock()
	return m.played, m.dropped
}
