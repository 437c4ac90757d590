package main

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rs/zerolog"
)

// LogFlags are shared by commands that log.
type LogFlags struct {
	Debug    bool `help:"Enable debug logging"`
	JSONLogs bool `name:"json-logs" help:"Log JSON to stderr instead of console output"`
}

// setupLogger configures zerolog for console or structured output. The
// level is debug when requested, otherwise level.
func setupLogger(w io.Writer, flags LogFlags, level zerolog.Level) zerolog.Logger {
	if flags.Debug {
		level = zerolog.DebugLevel
	}

	if flags.JSONLogs {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		return zerolog.New(w).
			Level(level).
			With().
			Timestamp().
			Logger()
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// setupBotLogger returns the logger bots use for their reasoning, which is
// only interesting while debugging.
func setupBotLogger(debug bool) *log.Logger {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
}
