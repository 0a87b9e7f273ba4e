package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/pixelweave/audio"
	"github.com/lixenwraith/pixelweave/config"
	"github.com/lixenwraith/pixelweave/constants"
	"github.com/lixenwraith/pixelweave/core"
	"github.com/lixenwraith/pixelweave/engine"
	"github.com/lixenwraith/pixelweave/input"
	"github.com/lixenwraith/pixelweave/palette"
	"github.com/lixenwraith/pixelweave/pattern"
	"github.com/lixenwraith/pixelweave/render"
)

// App wires the engine, renderer and input machine to one screen
// Everything except the event poller runs on the loop goroutine
type App struct {
	screen   tcell.Screen
	engine   *engine.PatternEngine
	renderer *render.Renderer
	machine  *input.Machine
	clock    *engine.PausableClock
	audio    *audio.AudioEngine
	log      zerolog.Logger

	frameInterval time.Duration
	message       string
}

// NewApp builds an app on an initialized screen
// keys may be nil for the default bindings, clock nil for the system clock
func NewApp(screen tcell.Screen, cfg config.Config, keys *input.KeyTable, clock engine.Clock, log zerolog.Logger) (*App, error) {
	mode, err := render.ParseColorMode(cfg.ColorMode)
	if err != nil {
		return nil, fmt.Errorf("error resolving color mode: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	pc := engine.NewPausableClock(clock)
	renderer := render.NewRenderer(screen, mode, pc)

	eng := engine.New(renderer, engine.Config{
		Size:    cfg.GridSize,
		Pattern: cfg.PatternKind(),
		Stagger: cfg.Stagger,
		Rand:    rand.New(rand.NewSource(seed)),
		Clock:   pc,
		Logger:  log.With().Str("component", "engine").Logger(),
	})

	if c, ok := cfg.SelectedColor(); ok {
		eng.SelectColor(c)
	}

	// The grid opens filled with the configured pattern
	plan := eng.Generate()

	log.Info().
		Int("size", cfg.GridSize).
		Str("pattern", cfg.Pattern).
		Str("color_mode", mode.String()).
		Int64("seed", seed).
		Msg("app initialized")

	return &App{
		screen:        screen,
		engine:        eng,
		renderer:      renderer,
		machine:       input.NewMachineWithKeys(keys),
		clock:         pc,
		log:           log,
		frameInterval: cfg.FrameInterval.Std(),
		message:       describePlan(plan),
	}, nil
}

// AddListener forwards engine notifications to l
func (a *App) AddListener(l engine.Listener) {
	a.engine.AddListener(l)
}

// AttachAudio plays engine cues on ae and binds the mute key to it
func (a *App) AttachAudio(ae *audio.AudioEngine) {
	a.audio = ae
	a.AddListener(ae)
}

// Run polls events and drives frames until quit or ctx is done
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, constants.EventChannelSize)
	g, ctx := errgroup.WithContext(ctx)

	// Poller exits and closes events when ctx is done
	g.Go(core.Guard(func() error {
		a.screen.ChannelEvents(events, ctx.Done())
		return nil
	}))

	g.Go(core.Guard(func() error {
		defer cancel()
		return a.loop(ctx, events)
	}))

	return g.Wait()
}

func (a *App) loop(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(a.frameInterval)
	defer ticker.Stop()

	a.draw()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !a.HandleEvent(ev) {
				a.log.Info().Msg("quit")
				return nil
			}
			a.draw()

		case <-ticker.C:
			a.engine.Tick()
			a.draw()
		}
	}
}

// HandleEvent applies one event, returns false on quit
func (a *App) HandleEvent(ev tcell.Event) bool {
	intent := a.machine.Process(ev)
	if intent == nil {
		return true
	}

	switch intent.Type {
	case input.IntentQuit:
		return false

	case input.IntentPause:
		a.clock.Toggle()

	case input.IntentMute:
		a.toggleMute()

	case input.IntentResize:
		// Held buttons count as new presses after a resize
		a.machine.Reset()
		a.screen.Sync()

	case input.IntentGenerate:
		a.message = describePlan(a.engine.Generate())

	case input.IntentClear:
		a.engine.Clear()
		a.message = "cleared"

	case input.IntentSelectPattern:
		a.engine.SelectPattern(intent.Pattern)
		a.message = ""

	case input.IntentGrow:
		a.resize(a.engine.Size() + constants.GridSizeStep)

	case input.IntentShrink:
		a.resize(a.engine.Size() - constants.GridSizeStep)

	case input.IntentNextColor:
		a.cycleColor(1)

	case input.IntentPrevColor:
		a.cycleColor(-1)

	case input.IntentRandomColor, input.IntentMouseRightDown:
		a.engine.ClearSelectedColor()

	case input.IntentMouseLeftDown:
		a.click(intent.X, intent.Y)
	}
	return true
}

// resize clamps n to the grid limits, no-op when the size would not change
func (a *App) resize(n int) {
	n = min(max(n, constants.MinGridSize), constants.MaxGridSize)
	if n == a.engine.Size() {
		return
	}
	a.engine.Resize(n)
	a.message = fmt.Sprintf("%dx%d", n, n)
}

func (a *App) toggleMute() {
	if a.audio == nil {
		a.message = "audio off"
		return
	}
	if a.audio.ToggleMute() {
		a.message = "sound on"
	} else {
		a.message = "muted"
	}
}

// cycleColor steps the explicit color, entering the palette from either end when none is set
func (a *App) cycleColor(step int) {
	c, ok := a.engine.SelectedColor()
	switch {
	case !ok && step > 0:
		c = 0
	case !ok:
		c = palette.Size - 1
	default:
		c = palette.Color((int(c) + step + palette.Size) % palette.Size)
	}
	a.engine.SelectColor(c)
}

func (a *App) click(x, y int) {
	target := a.renderer.HitTest(x, y)
	switch target.Kind {
	case render.TargetCell:
		a.engine.ToggleCell(target.Index)
	case render.TargetSwatch:
		a.engine.SelectColor(palette.Color(target.Index))
	}
}

func (a *App) draw() {
	selected, hasColor := a.engine.SelectedColor()
	a.renderer.Draw(render.Status{
		Pattern:  a.engine.Pattern().String(),
		Pending:  a.engine.Pending(),
		Paused:   a.clock.IsPaused(),
		Muted:    a.audio != nil && a.audio.IsMuted(),
		Selected: selected,
		HasColor: hasColor,
		Message:  a.message,
	})
}

// describePlan names the randomly drawn parameters of a plan for the status line
func describePlan(p *pattern.Plan) string {
	switch p.Kind {
	case pattern.Clusters:
		return fmt.Sprintf("%d clusters", len(p.Clusters))
	case pattern.Gradient:
		return fmt.Sprintf("%s gradient, %d colors", p.Direction, len(p.Ramp))
	case pattern.Geometric:
		return p.Shape.String()
	case pattern.Organic:
		return fmt.Sprintf("%d seeds", len(p.Seeds))
	default:
		return p.Kind.String()
	}
}
