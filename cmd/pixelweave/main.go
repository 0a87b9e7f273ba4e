// Command pixelweave fills a terminal grid with generative pastel patterns
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/pixelweave/audio"
	"github.com/lixenwraith/pixelweave/config"
	"github.com/lixenwraith/pixelweave/core"
	"github.com/lixenwraith/pixelweave/input"
	"github.com/lixenwraith/pixelweave/logging"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "0.0.0-dev"

var errNoTerminal = errors.New("stdout is not a terminal")

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pixelweave",
		Short:         "Generative pastel pattern grid",
		Long:          `Fill a terminal grid with random, cluster, gradient, geometric and organic pastel patterns`,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd)
		},
	}
	config.DefineFlags(rootCmd)
	rootCmd.AddCommand(versionCommand(), configCommand())
	return rootCmd
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "pixelweave version information",
		Long:  `Print the version information of pixelweave`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pixelweave v%s (Go version: %s)\n", Version, runtime.Version())
		},
	}
}

func configCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print effective configuration",
		Long:  `Print the configuration resolved from defaults, config file, environment and flags`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			b, err := config.Marshal(cfg, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "toml", "output format: toml, yaml or json")
	return cmd
}

// loadConfig reads .env when present, then resolves the config for cmd
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return config.Config{}, fmt.Errorf("error loading .env file: %w", err)
		}
	}
	configFile, _ := cmd.Flags().GetString("config")
	return config.Load(cmd, configFile)
}

// loadKeys merges an optional keymap file over the default bindings
func loadKeys(path string) (*input.KeyTable, error) {
	kt := input.DefaultKeyTable()
	if path == "" {
		return kt, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading keymap: %w", err)
	}
	override, err := input.LoadKeyConfig(data)
	if err != nil {
		return nil, fmt.Errorf("error loading keymap %s: %w", path, err)
	}
	return input.MergeKeyTable(kt, override), nil
}

func run(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.Setup(cfg.Debug, cfg.LogDir)
	if err != nil {
		return err
	}
	defer closeLog()

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errNoTerminal
	}

	keys, err := loadKeys(cfg.Keymap)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("error creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("error initializing terminal: %w", err)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()
	core.RegisterScreen(screen)
	defer core.RegisterScreen(nil)

	screen.EnableMouse()
	screen.HideCursor()

	app, err := NewApp(screen, cfg, keys, nil, logger)
	if err != nil {
		return err
	}

	if cfg.Audio {
		ae := audio.NewAudioEngine(audio.Config{Enabled: true, MasterVolume: cfg.Volume}, logger.With().Str("component", "audio").Logger())
		if err := ae.Start(); err != nil {
			logger.Warn().Err(err).Msg("audio start failed, continuing without audio")
		}
		defer ae.Stop()
		app.AttachAudio(ae)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx)
}
