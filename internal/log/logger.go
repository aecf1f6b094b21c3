package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger with the name of the component emitting it.
type Logger struct {
	zerolog.Logger
	base      zerolog.Logger
	component string
}

// Config holds logger configuration
type Config struct {
	Level     string
	Format    string
	Component string
	Output    io.Writer
}

const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// ParseLevel accepts the usual level names; an empty string means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}

// New creates a new logger with the given configuration. An unknown level
// falls back to info.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.Format == FormatConsole {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	component := cfg.Component
	if component == "" {
		component = ComponentApp
	}

	base := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return &Logger{
		Logger:    base.With().Str(FieldComponent, component).Logger(),
		base:      base,
		component: component,
	}
}

// Nop discards everything; used by tests.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop(), base: zerolog.Nop(), component: ComponentApp}
}

// WithComponent returns a new logger with a specific component name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.base.With().Str(FieldComponent, component).Logger(),
		base:      l.base,
		component: component,
	}
}

// Component returns the logger's component name
func (l *Logger) Component() string {
	return l.component
}
