// Package logger provides the application logger: a zap console sink and a
// dispatcher that buffers entries until the persistent sink is ready.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level string

const (
	LevelDebug   Level = "debug"
	LevelVerbose Level = "verbose"
	LevelLog     Level = "log"
	LevelWarn    Level = "warn"
	LevelError   Level = "error"
	LevelFatal   Level = "fatal"
)

type Entry struct {
	Level   Level
	Message string
	Params  []any
}

// Text renders the message, applying Params as printf arguments.
func (e Entry) Text() string {
	if len(e.Params) == 0 {
		return e.Message
	}
	return fmt.Sprintf(e.Message, e.Params...)
}

// Sink consumes entries once they leave the dispatcher.
type Sink interface {
	Write(e Entry)
}

// Logger is what the rest of the application logs through.
type Logger interface {
	Debug(msg string, params ...any)
	Verbose(msg string, params ...any)
	Log(msg string, params ...any)
	Warn(msg string, params ...any)
	Error(msg string, params ...any)
	Fatal(msg string, params ...any)
}

type Console struct {
	z *zap.Logger
}

// NewConsole builds the zap console sink. Production uses JSON output,
// otherwise the development encoder with colored levels.
func NewConsole(production bool, level string) (*Console, error) {
	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	lvl, err := zapcore.ParseLevel(zapLevelName(level))
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true

	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Console{z: z}, nil
}

// NewConsoleFromZap wraps an existing zap logger, mostly for tests.
func NewConsoleFromZap(z *zap.Logger) *Console {
	return &Console{z: z}
}

func zapLevelName(level string) string {
	switch strings.ToLower(level) {
	case "", "verbose":
		return "debug"
	case "log":
		return "info"
	case "fatal":
		return "error"
	}
	return level
}

func (c *Console) Write(e Entry) {
	msg := e.Text()
	switch e.Level {
	case LevelDebug:
		c.z.Debug(msg)
	case LevelVerbose:
		c.z.Debug(msg, zap.String("tag", "verbose"))
	case LevelWarn:
		c.z.Warn(msg)
	case LevelError:
		c.z.Error(msg)
	case LevelFatal:
		// never exits the process
		c.z.Error(msg, zap.String("tag", "fatal"))
	default:
		c.z.Info(msg)
	}
}

func (c *Console) Sync() error {
	return c.z.Sync()
}
