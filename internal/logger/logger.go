// Package logger owns the process-wide zerolog logger. Components take a
// child logger from WithComponent once and keep it; the level stays
// adjustable afterwards because it is gated globally.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// root is usable before Init so configuration errors can still be reported.
var root = newRoot(os.Stdout)

type Config struct {
	Level      string
	Debug      bool
	Output     string // stdout or stderr
	TimeFormat string
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

func newRoot(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// Init replaces the root logger. Every sink, such as the in-memory log
// buffer, receives each event alongside the console output.
func Init(config Config, sinks ...io.Writer) error {
	console, err := consoleWriter(config.Output)
	if err != nil {
		return err
	}

	level := zerolog.InfoLevel
	switch {
	case config.Debug:
		level = zerolog.DebugLevel
	case config.Level != "":
		if level, err = zerolog.ParseLevel(config.Level); err != nil {
			return err
		}
	}

	if config.TimeFormat != "" {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	out := console
	if len(sinks) > 0 {
		out = zerolog.MultiLevelWriter(append([]io.Writer{console}, sinks...)...)
	}

	zerolog.SetGlobalLevel(level)
	root = newRoot(out)
	log.Logger = root

	return nil
}

func consoleWriter(name string) (io.Writer, error) {
	switch strings.ToLower(name) {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	default:
		return nil, fmt.Errorf("unknown log output %q", name)
	}
}

// SetLevel changes the level of every logger handed out so far.
func SetLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

// SetLevelName parses and applies a level name such as "debug".
func SetLevelName(name string) error {
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return err
	}

	SetLevel(level)
	return nil
}

// Error logs on the root logger, for failures before any component exists.
func Error() *zerolog.Event {
	return root.Error()
}

func WithComponent(component string) zerolog.Logger {
	return root.With().Str("component", component).Logger()
}
