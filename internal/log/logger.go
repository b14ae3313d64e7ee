package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var logger = NewLogger(os.Stdout)

// Logger is a thin wrapper over a logrus logger so callers never import
// logrus directly.
type Logger struct {
	entry *logrus.Logger
}

func NewLogger(out io.Writer) *Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})
	return &Logger{entry: l}
}

// SetDebug toggles debug output on the package logger.
func SetDebug(debug bool) {
	if debug {
		logger.entry.SetLevel(logrus.DebugLevel)
		return
	}
	logger.entry.SetLevel(logrus.InfoLevel)
}

// IsDebug reports whether debug output is enabled.
func IsDebug() bool {
	return logger.entry.IsLevelEnabled(logrus.DebugLevel)
}

// SetOutput redirects the package logger.
func SetOutput(out io.Writer) {
	logger.entry.SetOutput(out)
}

// WithField returns an entry carrying one structured field.
func WithField(key string, value interface{}) *logrus.Entry {
	return logger.entry.WithField(key, value)
}

func Info(format string, args ...interface{}) {
	logger.entry.Infof(format, args...)
}

func Infof(format string, args ...interface{}) {
	logger.entry.Infof(format, args...)
}

// Debug logs a message with arguments
func Debug(msg string, args ...interface{}) {
	if len(args) == 0 {
		logger.entry.Debug(msg)
		return
	}
	logger.entry.Debugf(msg+": %v", args...)
}

// Debugf logs a formatted message
func Debugf(format string, args ...interface{}) {
	logger.entry.Debugf(format, args...)
}

// Error logs an error message with arguments
func Error(msg string, args ...interface{}) {
	if len(args) == 0 {
		logger.entry.Error(msg)
		return
	}
	logger.entry.Errorf(msg+": %v", args...)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	logger.entry.Errorf(format, args...)
}

// Warn logs a warning message with arguments
func Warn(msg string, args ...interface{}) {
	if len(args) == 0 {
		logger.entry.Warn(msg)
		return
	}
	logger.entry.Warnf(msg+": %v", args...)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	logger.entry.Warnf(format, args...)
}
