// Package log provides a leveled, structured logger for the application.
// It wraps the logrus package behind a small interface so that the core
// packages depend on the interface rather than on logrus directly, and so
// the surface adapters can decide where log output goes.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Fields is a set of structured fields attached to a log entry.
type Fields map[string]any

// Logger is the logging interface passed into the core packages.
type Logger interface {
	// WithField returns a logger that includes the given field on every entry.
	WithField(key string, value any) Logger

	// WithFields returns a logger that includes the given fields on every entry.
	WithFields(fields Fields) Logger

	// WithError returns a logger that includes the given error as a field.
	WithError(err error) Logger

	// Debugf logs a message at level Debug.
	Debugf(format string, args ...any)

	// Infof logs a message at level Info.
	Infof(format string, args ...any)

	// Warnf logs a message at level Warn.
	Warnf(format string, args ...any)

	// Errorf logs a message at level Error.
	Errorf(format string, args ...any)

	// Debug logs a message at level Debug.
	Debug(args ...any)

	// Info logs a message at level Info.
	Info(args ...any)

	// Warn logs a message at level Warn.
	Warn(args ...any)

	// Error logs a message at level Error.
	Error(args ...any)
}

// Option configures the logger returned by New.
type Option func(*logrus.Logger)

// WithOutput sets the writer log entries are formatted to.
func WithOutput(output io.Writer) Option {
	return func(l *logrus.Logger) {
		l.SetOutput(output)
	}
}

// WithLevel parses and sets the minimum level, e.g. "debug", "info", "warn".
func WithLevel(str string) Option {
	return func(l *logrus.Logger) {
		if level, err := logrus.ParseLevel(str); err == nil {
			l.SetLevel(level)
		}
	}
}

// New returns a Logger writing to stderr at Info level unless overridden by options.
func New(opts ...Option) Logger {
	parent := logrus.New()
	parent.SetOutput(os.Stderr)
	parent.SetLevel(logrus.InfoLevel)
	parent.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	for _, opt := range opts {
		opt(parent)
	}

	return &logger{entry: logrus.NewEntry(parent)}
}

type logger struct {
	entry *logrus.Entry
}

func (l *logger) WithField(key string, value any) Logger {
	return &logger{entry: l.entry.WithField(key, value)}
}

func (l *logger) WithFields(fields Fields) Logger {
	return &logger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

func (l *logger) WithError(err error) Logger {
	return &logger{entry: l.entry.WithError(err)}
}

func (l *logger) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }

func (l *logger) Infof(format string, args ...any) { l.entry.Infof(format, args...) }

func (l *logger) Warnf(format string, args ...any) { l.entry.Warnf(format, args...) }

func (l *logger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }

func (l *logger) Debug(args ...any) { l.entry.Debug(args...) }

func (l *logger) Info(args ...any) { l.entry.Info(args...) }

func (l *logger) Warn(args ...any) { l.entry.Warn(args...) }

func (l *logger) Error(args ...any) { l.entry.Error(args...) }
