// Package logging builds the zerolog logger used across wayfare.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DebugEnv switches the level to debug when set to YES.
const DebugEnv = "WAYFARE_DEBUG"

// Mode selects where log output goes.
type Mode int

const (
	// ModeFile writes JSON events to a file; the TUI owns the terminal.
	ModeFile Mode = iota
	// ModeConsole writes human-readable lines to the console writer.
	ModeConsole
)

// Options configure New.
type Options struct {
	Mode    Mode
	Level   string
	File    string    // required for ModeFile
	Console io.Writer // ModeConsole output; nil means os.Stderr
	NoColor bool
}

// New returns a logger and a closer for any file it opened.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	switch opts.Mode {
	case ModeConsole:
		out := opts.Console
		if out == nil {
			out = os.Stderr
		}
		cw := zerolog.ConsoleWriter{Out: out, NoColor: opts.NoColor, TimeFormat: time.RFC3339}
		return zerolog.New(cw).Level(level).With().Timestamp().Logger(), nopCloser{}, nil
	default:
		path := strings.TrimSpace(opts.File)
		if path == "" {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("log file path is empty")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("create log dir: %w", err)
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("open log file: %w", err)
		}
		return zerolog.New(file).Level(level).With().Timestamp().Logger(), file, nil
	}
}

// ParseLevel resolves the configured level; WAYFARE_DEBUG=YES forces debug.
// An empty value means info.
func ParseLevel(value string) (zerolog.Level, error) {
	if os.Getenv(DebugEnv) == "YES" {
		return zerolog.DebugLevel, nil
	}
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(value)
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("parse log level %q: %w", value, err)
	}
	return level, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
