package constants

import "time"

// Audio Output Format
const (
	// AudioSampleRate is the PCM rate handed to the playback backend
	AudioSampleRate = 44100

	// AudioBufferDuration is the mixer write period
	AudioBufferDuration = 20 * time.Millisecond

	// AudioBufferSamples is the frame count written per mixer tick
	AudioBufferSamples = AudioSampleRate * int(AudioBufferDuration) / int(time.Second)

	// AudioBytesPerFrame is interleaved stereo s16le
	AudioBytesPerFrame = 4

	// AudioQueueSize bounds pending cues, overflow is dropped
	AudioQueueSize = 32

	// AudioMaxVoices caps simultaneously mixed cues
	AudioMaxVoices = 8

	// AudioMasterVolume is the default output gain
	AudioMasterVolume = 0.5
)

// Cue Shapes
const (
	// PaintCueDuration is the blip played on a cell toggle
	PaintCueDuration = 60 * time.Millisecond
	PaintCueAttack   = 5 * time.Millisecond
	PaintCueRelease  = 40 * time.Millisecond

	// GenerateCueNote is the length of each note of the generate chime
	GenerateCueNote    = 80 * time.Millisecond
	GenerateCueAttack  = 5 * time.Millisecond
	GenerateCueRelease = 50 * time.Millisecond

	// ClearCueDuration is the noise sweep played on clear
	ClearCueDuration = 150 * time.Millisecond
	ClearCueAttack   = 30 * time.Millisecond
	ClearCueRelease  = 100 * time.Millisecond
)
