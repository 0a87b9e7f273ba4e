// Package audio plays short synthesized cues for engine events through a CLI playback backend
package audio

import (
	"errors"

	"github.com/lixenwraith/pixelweave/palette"
)

// SoundType represents different cues
type SoundType int

const (
	SoundPaint    SoundType = iota // Cell toggle blip, pitch follows color
	SoundGenerate                  // Two-note chime on generate
	SoundClear                     // Noise sweep on clear
)

// Cue identifies one cached sound
type Cue struct {
	Sound SoundType
	Color palette.Color // SoundPaint only
}

// BackendType identifies the audio backend
type BackendType int

const (
	BackendPulse BackendType = iota
	BackendPipeWire
	BackendALSA
	BackendSoX
	BackendFFplay
)

// BackendConfig describes a CLI audio backend
type BackendConfig struct {
	Type BackendType
	Name string
	Path string
	Args []string
}

// Config holds audio settings
type Config struct {
	Enabled      bool
	MasterVolume float64
}

// Sentinel errors
var (
	ErrNoAudioBackend = errors.New("no compatible audio backend found")
	ErrPipeClosed     = errors.New("audio pipe closed")
	ErrRunning        = errors.New("audio engine already running")
)

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64
