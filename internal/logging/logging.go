// Package logging builds the zerolog logger shared by notesnav components.
//
// The terminal belongs to the reader UI, so logs go to a file. Debug output is
// enabled with --verbose or by setting NOTESNAV_DEBUG:
//
//	NOTESNAV_DEBUG=1 notesnav read '#group1'
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

// DebugEnv enables debug logging when set to a non-empty value.
const DebugEnv = "NOTESNAV_DEBUG"

// Options controls logger construction.
type Options struct {
	// Path is the log file; empty discards output.
	Path string
	// Level is a zerolog level name. Empty means info.
	Level string
	// Verbose forces debug level.
	Verbose bool
}

// Enabled reports whether the debug env var is set.
func Enabled() bool {
	v := strings.TrimSpace(os.Getenv(DebugEnv))
	return v != "" && v != "0" && !strings.EqualFold(v, "false")
}

// New returns a logger for opts and a closer for the file sink.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}
	if opts.Verbose || Enabled() {
		level = zerolog.DebugLevel
	}
	if opts.Path == "" {
		return zerolog.Nop(), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("open log file: %w", err)
	}
	return NewWriter(f, level), f, nil
}

// NewWriter returns a timestamped logger writing JSON lines to w.
func NewWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Console returns a human-readable logger for one-shot CLI commands.
func Console(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose || Enabled() {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func parseLevel(name string) (zerolog.Level, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("parse log level %q: %w", name, err)
	}
	return level, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
