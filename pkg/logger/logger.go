package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the structured logger.
type Options struct {
	Service string
	Level   zerolog.Level
	Format  string
	Output  io.Writer
}

// New builds a zerolog logger. Format "console" switches to the human
// readable writer; anything else logs JSON.
func New(opts Options) zerolog.Logger {
	if opts.Level == zerolog.NoLevel {
		opts.Level = zerolog.InfoLevel
	}
	output := opts.Output
	if output == nil {
		output = os.Stdout
	}
	if strings.EqualFold(opts.Format, "console") {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: "15:04:05"}
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano

	return zerolog.New(output).
		With().
		Timestamp().
		Str("service", opts.Service).
		Logger().
		Level(opts.Level)
}

// ParseLevel maps a level name to zerolog, defaulting to info.
func ParseLevel(value string) zerolog.Level {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return zerolog.InfoLevel
	}
	if lvl, err := zerolog.ParseLevel(value); err == nil && lvl != zerolog.NoLevel {
		return lvl
	}
	return zerolog.InfoLevel
}

// Telemetry writes dashboard events to a logger at debug level.
type Telemetry struct {
	log zerolog.Logger
}

// NewTelemetry returns a telemetry sink backed by log.
func NewTelemetry(log zerolog.Logger) *Telemetry {
	return &Telemetry{log: log.With().Str("component", "telemetry").Logger()}
}

// Record logs event with its payload as fields.
func (t *Telemetry) Record(_ context.Context, event string, payload map[string]any) {
	if t == nil {
		return
	}
	t.log.Debug().Fields(payload).Str("event", event).Msg("dashboard event")
}
