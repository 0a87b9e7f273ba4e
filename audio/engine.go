package audio

import (
	"io"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/pixelweave/palette"
	"github.com/lixenwraith/pixelweave/pattern"
)

// AudioEngine plays engine cues through a piped playback process
// It implements engine.Listener; every method is non-blocking
type AudioEngine struct {
	config Config
	cache  *soundCache
	mixer  *Mixer
	log    zerolog.Logger

	backend *BackendConfig
	cmd     *exec.Cmd
	stdin   io.WriteCloser

	running    atomic.Bool
	muted      atomic.Bool
	silentMode atomic.Bool

	wg sync.WaitGroup
}

// NewAudioEngine creates an engine, muted when cfg is disabled
func NewAudioEngine(cfg Config, log zerolog.Logger) *AudioEngine {
	if cfg.MasterVolume <= 0 {
		cfg.MasterVolume = 0
	}
	ae := &AudioEngine{
		config: cfg,
		cache:  newSoundCache(),
		log:    log,
	}
	ae.muted.Store(!cfg.Enabled)
	return ae
}

// Start launches the playback backend and mixer
// On failure the engine stays usable in silent mode and the error is returned for logging
func (ae *AudioEngine) Start() error {
	if !ae.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	if !ae.config.Enabled {
		ae.silentMode.Store(true)
		return nil
	}

	backend, err := DetectBackend()
	if err != nil {
		ae.silentMode.Store(true)
		return err
	}

	cmd := exec.Command(backend.Path, backend.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		ae.silentMode.Store(true)
		return err
	}
	if err := cmd.Start(); err != nil {
		stdin.Close()
		ae.silentMode.Store(true)
		return err
	}

	ae.backend = backend
	ae.cmd = cmd
	ae.stdin = stdin
	ae.cache.preload()

	ae.attach(stdin)

	ae.wg.Add(1)
	go ae.monitorProcess()

	ae.log.Debug().Str("backend", backend.Name).Msg("audio started")
	return nil
}

// attach starts a mixer writing to w and watches it for pipe errors
func (ae *AudioEngine) attach(w io.Writer) {
	ae.mixer = NewMixer(w, ae.cache)
	ae.mixer.Start()

	ae.wg.Add(1)
	go ae.monitorMixer()
}

// monitorProcess watches for backend exit
func (ae *AudioEngine) monitorProcess() {
	defer ae.wg.Done()
	if err := ae.cmd.Wait(); err != nil && ae.running.Load() {
		ae.silentMode.Store(true)
	}
}

// monitorMixer switches to silent mode on pipe errors
func (ae *AudioEngine) monitorMixer() {
	defer ae.wg.Done()
	select {
	case err := <-ae.mixer.Errors():
		ae.silentMode.Store(true)
		ae.log.Warn().Err(err).Msg("audio output lost")
	case <-ae.mixer.stopChan:
	}
}

// Stop terminates the mixer and backend
func (ae *AudioEngine) Stop() {
	if !ae.running.CompareAndSwap(true, false) {
		return
	}
	if ae.mixer != nil {
		ae.mixer.Stop()
	}
	if ae.stdin != nil {
		ae.stdin.Close()
	}
	if ae.cmd != nil && ae.cmd.Process != nil {
		ae.cmd.Process.Kill()
	}
	ae.wg.Wait()
}

// Play queues cue, returns false when muted, silent, or the queue is full
func (ae *AudioEngine) Play(cue Cue) bool {
	if !ae.IsEnabled() || ae.mixer == nil {
		return false
	}
	return ae.mixer.Play(cue, ae.config.MasterVolume)
}

// ToggleMute toggles mute state, returns true if now audible
func (ae *AudioEngine) ToggleMute() bool {
	muted := !ae.muted.Load()
	ae.muted.Store(muted)
	return !muted
}

// IsMuted returns current mute state
func (ae *AudioEngine) IsMuted() bool {
	return ae.muted.Load()
}

// IsEnabled returns true if running, unmuted, and attached to a backend
func (ae *AudioEngine) IsEnabled() bool {
	return ae.running.Load() && !ae.muted.Load() && !ae.silentMode.Load()
}

// Generated plays the generate chime
func (ae *AudioEngine) Generated(*pattern.Plan) {
	ae.Play(Cue{Sound: SoundGenerate})
}

// Toggled plays a blip pitched by the painted color
func (ae *AudioEngine) Toggled(_ int, c palette.Color) {
	ae.Play(Cue{Sound: SoundPaint, Color: c})
}

// Cleared plays the clear sweep
func (ae *AudioEngine) Cleared() {
	ae.Play(Cue{Sound: SoundClear})
}
