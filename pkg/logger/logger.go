package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config options for the logger.
type Config struct {
	Env   string // development -> human-readable console; otherwise JSON
	Level string // trace, debug, info, warn, error
}

// Logger is a thin wrapper over zerolog for injection and consistency.
type Logger struct {
	zl zerolog.Logger
}

// New creates a structured logger. Development uses console output,
// everything else emits JSON lines.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zl := zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()

	// Redirect zerolog's global logger for libraries that use it.
	log.Logger = zl

	return &Logger{zl: zl}
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Trace, Debug, Info, Warn, Error, Fatal delegate to zerolog.
func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With creates a sublogger with fixed fields.
func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}

// Zerolog exposes the wrapped logger for APIs that want it directly.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}
