// Package log wraps zap with the conventions used by all trailsim commands:
// a process-wide default logger, named sub-loggers per component, and
// optional zapfilter rules loaded from a config file.
package log

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"moul.io/zapfilter"
)

type (
	Level  = zapcore.Level
	Field  = zap.Field
	Option = zap.Option
)

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
	FatalLevel = zapcore.FatalLevel
)

// Logger is a named zap logger handed out to components.
type Logger struct {
	l     *zap.Logger
	level zap.AtomicLevel
	name  string
}

func ParseLevel(text string) (Level, error) {
	return zapcore.ParseLevel(text)
}

func WithCaller(enabled bool) Option { return zap.WithCaller(enabled) }

func AddCallerSkip(skip int) Option { return zap.AddCallerSkip(skip) }

// New creates a JSON logger writing to w at the given level.
func New(w io.Writer, level Level, opts ...Option) *Logger {
	return newLogger(w, level, prodEncoder(), "", opts...)
}

// DevLogger creates a human-readable console logger writing to w.
func DevLogger(w io.Writer, level Level, opts ...Option) *Logger {
	return newLogger(w, level, devEncoder(), "", opts...)
}

// NewWithRules behaves like New but wraps the core with zapfilter rules,
// e.g. "debug:simulation.* info:*".
func NewWithRules(w io.Writer, level Level, rules string, opts ...Option) (
	*Logger, error,
) {
	ret := New(w, level, opts...)
	filters, err := zapfilter.ParseRules(rules)
	if err != nil {
		return nil, err
	}
	ret.l = ret.l.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapfilter.NewFilteringCore(c, filters)
	}))
	return ret, nil
}

// LoadRules reads zapfilter rules from a file. Lines starting with '#' are
// skipped, the remaining lines are joined to a single rule set.
func LoadRules(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	rules := []string{}
	for line := range strings.Lines(string(data)) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules = append(rules, line)
	}
	return strings.Join(rules, " "), nil
}

func newLogger(
	w io.Writer, level Level, enc zapcore.Encoder, name string, opts ...Option,
) *Logger {
	atomic := zap.NewAtomicLevelAt(level)
	core := zapcore.NewCore(enc, zapcore.AddSync(w), atomic)
	return &Logger{l: zap.New(core, opts...).Named(name), level: atomic, name: name}
}

func prodEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(cfg)
}

func devEncoder() zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

func (l *Logger) Named(name string) *Logger {
	sub := *l
	sub.l = l.l.Named(name)
	if sub.name != "" {
		sub.name = sub.name + "." + name
	} else {
		sub.name = name
	}
	return &sub
}

func (l *Logger) SetLevel(level Level) { l.level.SetLevel(level) }

func (l *Logger) Debug(msg string, fields ...Field) { l.l.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...Field)  { l.l.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.l.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...Field) { l.l.Error(msg, fields...) }
func (l *Logger) Fatal(msg string, fields ...Field) { l.l.Fatal(msg, fields...) }

func (l *Logger) Sync() error { return l.l.Sync() }
