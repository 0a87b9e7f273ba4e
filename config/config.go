// Package config loads pixelweave configuration from flags, environment and an optional file
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/pixelweave/constants"
	"github.com/lixenwraith/pixelweave/palette"
	"github.com/lixenwraith/pixelweave/pattern"
)

// EnvPrefix prefixes every environment override, e.g. PIXELWEAVE_GRID_SIZE
const EnvPrefix = "PIXELWEAVE"

// Sentinel errors returned by Validate
var (
	ErrGridSize  = errors.New("invalid grid size")
	ErrPattern   = errors.New("invalid pattern")
	ErrColor     = errors.New("invalid palette color")
	ErrColorMode = errors.New("invalid color mode")
	ErrInterval  = errors.New("invalid frame interval")
	ErrVolume    = errors.New("invalid volume")
	ErrFormat    = errors.New("unsupported output format")
)

// Config is the effective runtime configuration
type Config struct {
	// GridSize is the side length of the square grid
	GridSize int `mapstructure:"grid_size" json:"grid_size" toml:"grid_size" yaml:"grid_size"`
	// Pattern is the generator selected at startup
	Pattern string `mapstructure:"pattern" json:"pattern" toml:"pattern" yaml:"pattern"`
	// Color is the initially selected paint color as hex or palette index, empty paints random colors
	Color string `mapstructure:"color" json:"color" toml:"color" yaml:"color"`
	// ColorMode is auto, truecolor or 256
	ColorMode string `mapstructure:"color_mode" json:"color_mode" toml:"color_mode" yaml:"color_mode"`
	// Stagger reveals generated cells over time instead of all at once
	Stagger bool `mapstructure:"stagger" json:"stagger" toml:"stagger" yaml:"stagger"`
	// FrameInterval is the redraw period
	FrameInterval Duration `mapstructure:"frame_interval" json:"frame_interval" toml:"frame_interval" yaml:"frame_interval"`
	// Seed fixes the random source, 0 seeds from the clock
	Seed int64 `mapstructure:"seed" json:"seed" toml:"seed" yaml:"seed"`
	// Audio enables paint and generate cues
	Audio bool `mapstructure:"audio" json:"audio" toml:"audio" yaml:"audio"`
	// Volume is the audio master gain in [0,1]
	Volume float64 `mapstructure:"volume" json:"volume" toml:"volume" yaml:"volume"`
	// Keymap is an optional TOML file overriding key bindings
	Keymap string `mapstructure:"keymap" json:"keymap" toml:"keymap" yaml:"keymap"`
	// Debug enables file logging under LogDir
	Debug bool `mapstructure:"debug" json:"debug" toml:"debug" yaml:"debug"`
	// LogDir is where debug logs are written
	LogDir string `mapstructure:"log_dir" json:"log_dir" toml:"log_dir" yaml:"log_dir"`
}

var defaults = map[string]any{
	"grid_size":      constants.DefaultGridSize,
	"pattern":        pattern.Random.String(),
	"color":          "",
	"color_mode":     "auto",
	"stagger":        true,
	"frame_interval": constants.FrameUpdateInterval.String(),
	"seed":           0,
	"audio":          false,
	"volume":         constants.AudioMasterVolume,
	"keymap":         "",
	"debug":          false,
	"log_dir":        "logs",
}

// DefineFlags registers every config key as a persistent flag of rootCmd
func DefineFlags(rootCmd *cobra.Command) {
	f := rootCmd.PersistentFlags()
	f.StringP("config", "c", "", "path to config file (toml, yaml or json)")
	f.IntP("grid_size", "n", constants.DefaultGridSize, "grid side length")
	f.StringP("pattern", "p", pattern.Random.String(), "initial pattern: random, clusters, gradient, geometric or organic")
	f.String("color", "", "initial paint color as hex or palette index, empty for random")
	f.String("color_mode", "auto", "terminal color mode: auto, truecolor or 256")
	f.Bool("stagger", true, "reveal generated cells over time")
	f.Duration("frame_interval", constants.FrameUpdateInterval, "redraw period")
	f.Int64("seed", 0, "random seed, 0 seeds from the clock")
	f.Bool("audio", false, "play audio cues")
	f.Float64("volume", constants.AudioMasterVolume, "audio master volume in [0,1]")
	f.String("keymap", "", "optional TOML keymap file")
	f.BoolP("debug", "d", false, "write debug log to log_dir")
	f.String("log_dir", "logs", "debug log directory")
}

// Load resolves configuration with precedence flags > env > file > defaults
// cmd may be nil to skip flag binding
func Load(cmd *cobra.Command, configFile string) (Config, error) {
	v := viper.NewWithOptions(viper.WithDecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	)))

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for key := range defaults {
			if flag := cmd.Flag(key); flag != nil {
				_ = v.BindPFlag(key, flag)
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration with no overrides applied
func Default() Config {
	return Config{
		GridSize:      constants.DefaultGridSize,
		Pattern:       pattern.Random.String(),
		ColorMode:     "auto",
		Stagger:       true,
		FrameInterval: Duration(constants.FrameUpdateInterval),
		Volume:        constants.AudioMasterVolume,
		LogDir:        "logs",
	}
}

// Validate checks value ranges, errors wrap the sentinel of the offending key
func (c Config) Validate() error {
	if c.GridSize < constants.MinGridSize || c.GridSize > constants.MaxGridSize {
		return fmt.Errorf("%w: %d outside [%d,%d]", ErrGridSize, c.GridSize, constants.MinGridSize, constants.MaxGridSize)
	}
	if _, err := pattern.ParseKind(c.Pattern); err != nil {
		return fmt.Errorf("%w: %q", ErrPattern, c.Pattern)
	}
	if c.Color != "" {
		if _, err := palette.Parse(c.Color); err != nil {
			return fmt.Errorf("%w: %q", ErrColor, c.Color)
		}
	}
	switch strings.ToLower(c.ColorMode) {
	case "auto", "truecolor", "256":
	default:
		return fmt.Errorf("%w: %q", ErrColorMode, c.ColorMode)
	}
	if c.FrameInterval.Std() < time.Millisecond || c.FrameInterval.Std() > time.Second {
		return fmt.Errorf("%w: %s outside [1ms,1s]", ErrInterval, c.FrameInterval)
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("%w: %g outside [0,1]", ErrVolume, c.Volume)
	}
	return nil
}

// PatternKind returns the parsed startup pattern
func (c Config) PatternKind() pattern.Kind {
	k, err := pattern.ParseKind(c.Pattern)
	if err != nil {
		return pattern.Random
	}
	return k
}

// SelectedColor returns the parsed initial paint color, false for random
func (c Config) SelectedColor() (palette.Color, bool) {
	if c.Color == "" {
		return 0, false
	}
	col, err := palette.Parse(c.Color)
	if err != nil {
		return 0, false
	}
	return col, true
}

// Marshal encodes cfg as toml, yaml or json
func Marshal(cfg Config, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "toml":
		return toml.Marshal(cfg)
	case "yaml", "yml":
		return yaml.Marshal(cfg)
	case "json":
		return json.MarshalIndent(cfg, "", "  ")
	default:
		return nil, fmt.Errorf("%w: %q, use toml, yaml or json", ErrFormat, format)
	}
}
