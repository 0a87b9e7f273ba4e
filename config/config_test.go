package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/pixelweave/constants"
	"github.com/lixenwraith/pixelweave/palette"
	"github.com/lixenwraith/pixelweave/pattern"
)

func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "pixelweave"}
	DefineFlags(cmd)
	return cmd
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newTestCommand(), "")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, 30, cfg.GridSize)
	require.Equal(t, pattern.Random, cfg.PatternKind())
	require.Equal(t, 16*time.Millisecond, cfg.FrameInterval.Std())
	require.True(t, cfg.Stagger)
	require.False(t, cfg.Debug)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PIXELWEAVE_GRID_SIZE", "45")
	t.Setenv("PIXELWEAVE_PATTERN", "organic")
	t.Setenv("PIXELWEAVE_FRAME_INTERVAL", "40ms")
	t.Setenv("PIXELWEAVE_STAGGER", "false")

	cfg, err := Load(newTestCommand(), "")
	require.NoError(t, err)
	require.Equal(t, 45, cfg.GridSize)
	require.Equal(t, pattern.Organic, cfg.PatternKind())
	require.Equal(t, 40*time.Millisecond, cfg.FrameInterval.Std())
	require.False(t, cfg.Stagger)
}

func TestLoadFlagOverridesEnv(t *testing.T) {
	t.Setenv("PIXELWEAVE_GRID_SIZE", "45")

	cmd := newTestCommand()
	require.NoError(t, cmd.PersistentFlags().Set("grid_size", "20"))
	require.NoError(t, cmd.PersistentFlags().Set("frame_interval", "25ms"))

	cfg, err := Load(cmd, "")
	require.NoError(t, err)
	require.Equal(t, 20, cfg.GridSize)
	require.Equal(t, 25*time.Millisecond, cfg.FrameInterval.Std())
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pixelweave.toml")
	data := []byte("grid_size = 15\npattern = \"gradient\"\nframe_interval = \"33ms\"\naudio = true\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(newTestCommand(), path)
	require.NoError(t, err)
	require.Equal(t, 15, cfg.GridSize)
	require.Equal(t, pattern.Gradient, cfg.PatternKind())
	require.Equal(t, 33*time.Millisecond, cfg.FrameInterval.Std())
	require.True(t, cfg.Audio)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(nil, filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("PIXELWEAVE_GRID_SIZE", "500")
	_, err := Load(nil, "")
	require.ErrorIs(t, err, ErrGridSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"grid too small", func(c *Config) { c.GridSize = constants.MinGridSize - 1 }, ErrGridSize},
		{"grid too large", func(c *Config) { c.GridSize = constants.MaxGridSize + 1 }, ErrGridSize},
		{"unknown pattern", func(c *Config) { c.Pattern = "plaid" }, ErrPattern},
		{"unknown color mode", func(c *Config) { c.ColorMode = "16" }, ErrColorMode},
		{"unknown color", func(c *Config) { c.Color = "#000000" }, ErrColor},
		{"color index out of range", func(c *Config) { c.Color = "10" }, ErrColor},
		{"zero interval", func(c *Config) { c.FrameInterval = 0 }, ErrInterval},
		{"loud volume", func(c *Config) { c.Volume = 1.5 }, ErrVolume},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}

	require.NoError(t, Default().Validate())
}

func TestSelectedColor(t *testing.T) {
	cfg := Default()
	_, ok := cfg.SelectedColor()
	require.False(t, ok)

	cfg.Color = "#bae1ff"
	require.NoError(t, cfg.Validate())
	c, ok := cfg.SelectedColor()
	require.True(t, ok)
	require.Equal(t, palette.Color(4), c)

	cfg.Color = "7"
	c, ok = cfg.SelectedColor()
	require.True(t, ok)
	require.Equal(t, palette.Color(7), c)
}

func TestMarshalFormats(t *testing.T) {
	cfg := Default()

	b, err := Marshal(cfg, "toml")
	require.NoError(t, err)
	require.Contains(t, string(b), "grid_size = 30")
	require.Contains(t, string(b), "frame_interval = '16ms'")

	b, err = Marshal(cfg, "yaml")
	require.NoError(t, err)
	var fromYAML map[string]any
	require.NoError(t, yaml.Unmarshal(b, &fromYAML))
	require.Equal(t, "16ms", fromYAML["frame_interval"])
	require.Equal(t, 30, fromYAML["grid_size"])

	b, err = Marshal(cfg, "json")
	require.NoError(t, err)
	var fromJSON map[string]any
	require.NoError(t, json.Unmarshal(b, &fromJSON))
	require.Equal(t, "random", fromJSON["pattern"])

	_, err = Marshal(cfg, "ini")
	require.ErrorIs(t, err, ErrFormat)
}

func TestMarshalRoundTripThroughLoad(t *testing.T) {
	cfg := Default()
	cfg.GridSize = 40
	cfg.Pattern = "geometric"

	b, err := Marshal(cfg, "toml")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "dump.toml")
	require.NoError(t, os.WriteFile(path, b, 0644))

	loaded, err := Load(nil, path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}
