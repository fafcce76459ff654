// Package ulogger provides the SDK's structured logging interface, backed
// by zerolog, matching the level names and pretty/JSON output modes every
// manager in this SDK expects.
package ulogger

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Level mirrors the logging.level values recognized by the SDK config.
type Level string

const (
	LevelTrace Level = "trace"
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Logger is the structured logging contract used throughout the SDK.
// Every manager accepts one, defaulting to a no-op implementation when the
// caller does not supply one.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
	With(fields map[string]interface{}) Logger
	LogLevel() Level
}

// ZLogger wraps zerolog.Logger to satisfy Logger, named for a service so
// log lines can be attributed to the manager that emitted them.
type ZLogger struct {
	zerolog.Logger
	service string
}

// New builds a service-scoped logger. pretty selects a colorized console
// writer over structured JSON; level sets the minimum emitted level.
func New(service string, level Level, pretty bool) *ZLogger {
	if service == "" {
		service = "originals-sdk"
	}

	var base zerolog.Logger
	if pretty {
		base = prettyLogger(service)
	} else {
		base = zerolog.New(os.Stdout).With().Timestamp().Str("service", service).Logger()
	}

	z := &ZLogger{Logger: base, service: service}
	z.setLevel(level)

	return z
}

// Nop returns a Logger that discards everything, used when callers omit a
// logger from their configuration.
func Nop() Logger {
	return &ZLogger{Logger: zerolog.Nop(), service: "nop"}
}

func prettyLogger(service string) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("| %-12s| %s", service, i)
	}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("%-6s|", i))
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func (z *ZLogger) setLevel(level Level) {
	switch level {
	case LevelTrace:
		z.Logger = z.Logger.Level(zerolog.TraceLevel)
	case LevelDebug:
		z.Logger = z.Logger.Level(zerolog.DebugLevel)
	case LevelWarn:
		z.Logger = z.Logger.Level(zerolog.WarnLevel)
	case LevelError:
		z.Logger = z.Logger.Level(zerolog.ErrorLevel)
	default:
		z.Logger = z.Logger.Level(zerolog.InfoLevel)
	}
}

func (z *ZLogger) Debugf(format string, args ...interface{}) { z.Logger.Debug().Msgf(format, args...) }
func (z *ZLogger) Infof(format string, args ...interface{})  { z.Logger.Info().Msgf(format, args...) }
func (z *ZLogger) Warnf(format string, args ...interface{})  { z.Logger.Warn().Msgf(format, args...) }
func (z *ZLogger) Errorf(format string, args ...interface{}) { z.Logger.Error().Msgf(format, args...) }
func (z *ZLogger) Fatalf(format string, args ...interface{}) { z.Logger.Fatal().Msgf(format, args...) }

// With returns a child logger carrying the given fields on every entry.
func (z *ZLogger) With(fields map[string]interface{}) Logger {
	ctx := z.Logger.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}

	return &ZLogger{Logger: ctx.Logger(), service: z.service}
}

// LogLevel reports the current minimum level as a Level value.
func (z *ZLogger) LogLevel() Level {
	switch z.Logger.GetLevel() {
	case zerolog.TraceLevel:
		return LevelTrace
	case zerolog.DebugLevel:
		return LevelDebug
	case zerolog.WarnLevel:
		return LevelWarn
	case zerolog.ErrorLevel:
		return LevelError
	default:
		return LevelInfo
	}
}
