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

// Config holds logger configuration
type Config struct {
	Level  string    // debug, info, warn, error
	Pretty bool      // Enable pretty console output
	Output io.Writer // defaults to stderr so reports on stdout stay clean
}

// ParseLevel maps a level name to a zerolog level. Unknown names map to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New creates a new structured logger
func New(cfg Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: "15:04:05",
		}
	}

	return zerolog.New(output).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// SetGlobalLogger sets the package-level logger
func SetGlobalLogger(l zerolog.Logger) {
	log.Logger = l
}

// CalculationLogger adapts a zerolog.Logger to the printf-style Logger
// interface used by the simulation engine.
type CalculationLogger struct {
	zl zerolog.Logger
}

// NewCalculationLogger wraps l, tagging every event with the component name.
func NewCalculationLogger(l zerolog.Logger, component string) *CalculationLogger {
	return &CalculationLogger{zl: l.With().Str("component", component).Logger()}
}

func (c *CalculationLogger) Debugf(format string, args ...any) {
	c.zl.Debug().Msg(fmt.Sprintf(format, args...))
}

func (c *CalculationLogger) Infof(format string, args ...any) {
	c.zl.Info().Msg(fmt.Sprintf(format, args...))
}

func (c *CalculationLogger) Warnf(format string, args ...any) {
	c.zl.Warn().Msg(fmt.Sprintf(format, args...))
}

func (c *CalculationLogger) Errorf(format string, args ...any) {
	c.zl.Error().Msg(fmt.Sprintf(format, args...))
}
