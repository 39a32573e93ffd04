// Package logging provides the leveled logger shared by the SDK and its transport.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
)

// LogLevel specifies the severity of a log message.
type LogLevel int

// Various logging levels which can categorize the message.
// These are ordered in decreasing severity.
const (
	LogError LogLevel = iota
	LogWarn
	LogInfo
	LogDebug
	LogTrace
)

func (l LogLevel) String() string {
	switch l {
	case LogError:
		return "error"
	case LogWarn:
		return "warn"
	case LogInfo:
		return "info"
	case LogDebug:
		return "debug"
	case LogTrace:
		return "trace"
	}

	return fmt.Sprintf("unknown (%d)", int(l))
}

// Logger defines a logging interface.
type Logger interface {
	// Error outputs an error level log message.
	Error(format string, v ...interface{})

	// Warn outputs an warn level log message.
	Warn(format string, v ...interface{})

	// Info outputs an info level log message.
	Info(format string, v ...interface{})

	// Debug outputs a debug level log message.
	Debug(format string, v ...interface{})

	// Trace outputs a trace level log message.
	Trace(format string, v ...interface{})
}

// DefaultLogger is a simple logger that uses the standard log package.
type DefaultLogger struct {
	Level    LogLevel
	GoLogger *log.Logger
	Offset   int
}

// NewDefaultLogger creates a logger writing to stderr.
func NewDefaultLogger(level LogLevel, offset int) *DefaultLogger {
	return NewWriterLogger(os.Stderr, level, offset)
}

// NewWriterLogger creates a logger writing to w.
func NewWriterLogger(w io.Writer, level LogLevel, offset int) *DefaultLogger {
	return &DefaultLogger{
		Level:    level,
		GoLogger: log.New(w, "gosocial ", log.Lmicroseconds|log.Lshortfile),
		Offset:   offset,
	}
}

func (l *DefaultLogger) Error(format string, v ...interface{}) {
	l.Log(LogError, format, v...)
}

func (l *DefaultLogger) Warn(format string, v ...interface{}) {
	l.Log(LogWarn, format, v...)
}

func (l *DefaultLogger) Info(format string, v ...interface{}) {
	l.Log(LogInfo, format, v...)
}

func (l *DefaultLogger) Debug(format string, v ...interface{}) {
	l.Log(LogDebug, format, v...)
}

func (l *DefaultLogger) Trace(format string, v ...interface{}) {
	l.Log(LogTrace, format, v...)
}

// Log writes the message if level is enabled, tagged with the level name.
func (l *DefaultLogger) Log(level LogLevel, format string, v ...interface{}) {
	if level > l.Level {
		return
	}

	s := fmt.Sprintf("[%s] ", level) + fmt.Sprintf(format, v...)

	err := l.GoLogger.Output(l.Offset+2, s)
	if err != nil {
		log.Printf("Logger error occurred (%s)\n", err)
	}
}

// NoopLogger discards every message.
type NoopLogger struct{}

func (NoopLogger) Error(_ string, _ ...interface{}) {}
func (NoopLogger) Warn(_ string, _ ...interface{})  {}
func (NoopLogger) Info(_ string, _ ...interface{})  {}
func (NoopLogger) Debug(_ string, _ ...interface{}) {}
func (NoopLogger) Trace(_ string, _ ...interface{}) {}
