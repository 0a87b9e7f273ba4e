// Package logging configures zerolog for a process that owns the terminal
// Output goes to a rotated file when debugging and is discarded otherwise
package logging

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// LogFileName is the active log file inside the log directory
	LogFileName = "pixelweave.log"

	// MaxLogSize triggers rotation to LogFileName.1 at startup
	MaxLogSize = 10 * 1024 * 1024
)

// Setup installs the global logger and returns it with a close func
// With debug off every logger, including the standard library one, writes to io.Discard
func Setup(debug bool, dir string) (zerolog.Logger, func(), error) {
	if !debug {
		logger := zerolog.New(io.Discard).Level(zerolog.Disabled)
		log.Logger = logger
		stdlog.SetOutput(io.Discard)
		return logger, func() {}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("error creating log directory: %w", err)
	}

	path := filepath.Join(dir, LogFileName)
	if err := rotate(path); err != nil {
		return zerolog.Nop(), nil, err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("error opening log file: %w", err)
	}

	logger := zerolog.New(f).Level(zerolog.DebugLevel).With().
		Timestamp().
		Str("session", uuid.NewString()).
		Logger()
	log.Logger = logger

	stdlog.SetFlags(0)
	stdlog.SetOutput(logger)

	return logger, func() { _ = f.Close() }, nil
}

// rotate moves an oversized log aside, replacing any earlier rotation
func rotate(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking log file: %w", err)
	}
	if info.Size() <= MaxLogSize {
		return nil
	}
	if err := os.Rename(path, path+".1"); err != nil {
		return fmt.Errorf("error rotating log file: %w", err)
	}
	return nil
}
