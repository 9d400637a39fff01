// Package logger provides structured logging for all components.
// It wraps logrus with a component-scoped logger and a compact
// variadic key/value API.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger is a component-scoped structured logger.
type Logger struct {
	entry *logrus.Entry
}

// Config configures a Logger.
type Config struct {
	// Component appears on every line as the "component" field.
	Component string
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string
	// Output defaults to os.Stderr.
	Output io.Writer
	// JSON switches to JSON formatting (text otherwise).
	JSON bool
}

// New creates a logger from config.
func New(cfg Config) *Logger {
	l := logrus.New()

	if cfg.Output != nil {
		l.SetOutput(cfg.Output)
	} else {
		l.SetOutput(os.Stderr)
	}

	if cfg.JSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	entry := logrus.NewEntry(l)
	if cfg.Component != "" {
		entry = entry.WithField("component", cfg.Component)
	}
	return &Logger{entry: entry}
}

// NewDefault creates a text logger at info level for the given component.
func NewDefault(component string) *Logger {
	return New(Config{Component: component})
}

// WithField returns a logrus entry with one extra field attached.
func (l *Logger) WithField(key string, value interface{}) *logrus.Entry {
	return l.entry.WithField(key, value)
}

// WithFields returns a logrus entry with the given fields attached.
// A nil map is allowed and returns the base entry.
func (l *Logger) WithFields(fields map[string]interface{}) *logrus.Entry {
	if len(fields) == 0 {
		return l.entry
	}
	return l.entry.WithFields(logrus.Fields(fields))
}

// Debug logs at debug level with alternating key/value pairs.
func (l *Logger) Debug(msg string, kv ...interface{}) {
	l.withKV(kv).Debug(msg)
}

// Info logs at info level with alternating key/value pairs.
func (l *Logger) Info(msg string, kv ...interface{}) {
	l.withKV(kv).Info(msg)
}

// Warn logs at warn level with alternating key/value pairs.
func (l *Logger) Warn(msg string, kv ...interface{}) {
	l.withKV(kv).Warn(msg)
}

// Error logs at error level with alternating key/value pairs.
func (l *Logger) Error(msg string, kv ...interface{}) {
	l.withKV(kv).Error(msg)
}

// withKV folds alternating key/value pairs into an entry. A trailing
// key without a value is recorded under "EXTRA_VALUE".
func (l *Logger) withKV(kv []interface{}) *logrus.Entry {
	entry := l.entry
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		entry = entry.WithField(key, kv[i+1])
	}
	if len(kv)%2 != 0 {
		entry = entry.WithField("EXTRA_VALUE", kv[len(kv)-1])
	}
	return entry
}
