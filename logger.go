package baseclient

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// Logger defines the interface for logging operations
type Logger interface {
	// Errorf logs an error message with formatting
	Errorf(format string, args ...interface{})
	// Debugf logs a diagnostic message with formatting
	Debugf(format string, args ...interface{})
}

// StdLogger is a simple logger that writes to an io.Writer
type StdLogger struct {
	writer io.Writer
	debug  bool
}

// Errorf implements Logger.Errorf by writing a formatted error message to the writer
func (l *StdLogger) Errorf(format string, args ...interface{}) {
	if l.writer != nil {
		fmt.Fprintf(l.writer, format+"\n", args...)
	}
}

// Debugf writes only when debug output was enabled
func (l *StdLogger) Debugf(format string, args ...interface{}) {
	if l.debug && l.writer != nil {
		fmt.Fprintf(l.writer, format+"\n", args...)
	}
}

// NewStdLogger creates a new StdLogger with the specified writer
// If writer is nil, os.Stderr is used as the default
func NewStdLogger(writer io.Writer) *StdLogger {
	if writer == nil {
		writer = os.Stderr
	}
	return &StdLogger{
		writer: writer,
	}
}

// NewDebugLogger creates a StdLogger that also writes debug messages
func NewDebugLogger(writer io.Writer) *StdLogger {
	ret := NewStdLogger(writer)
	ret.debug = true
	return ret
}

type nopLogger struct{}

func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Debugf(string, ...interface{}) {}

// NopLogger discards everything
var NopLogger Logger = nopLogger{}

// NewZapLogger adapts a zap logger
func NewZapLogger(logger *zap.Logger) Logger {
	if logger == nil {
		return NopLogger
	}
	return logger.Sugar()
}

// DefaultLogger is the default logger instance that writes to os.Stderr
var DefaultLogger Logger = NewStdLogger(os.Stderr)
