// Package logger provides leveled, optionally colored logging.
package logger

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Logger is the logging interface library packages accept. Packages
// should depend on this, never on a concrete implementation.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Noop is a Logger that discards everything.
type Noop struct{}

func (Noop) Debug(format string, args ...interface{}) {}
func (Noop) Info(format string, args ...interface{})  {}
func (Noop) Warn(format string, args ...interface{})  {}
func (Noop) Error(format string, args ...interface{}) {}

// Level defines log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

// ParseLevel converts a level name to a Level, defaulting to Info.
func ParseLevel(name string) Level {
	switch strings.ToLower(name) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "none", "off":
		return LevelNone
	default:
		return LevelInfo
	}
}

// Leveled writes timestamped, level-prefixed lines to an io.Writer.
type Leveled struct {
	out       io.Writer
	useColors bool
	level     Level
}

// New creates a Leveled logger.
func New(out io.Writer, level Level, useColors bool) *Leveled {
	return &Leveled{out: out, level: level, useColors: useColors}
}

// SetLevel changes the minimum emitted level.
func (l *Leveled) SetLevel(level Level) {
	l.level = level
}

func (l *Leveled) Debug(format string, args ...interface{}) {
	l.emit(LevelDebug, "DEBUG", color.CyanString, format, args...)
}

func (l *Leveled) Info(format string, args ...interface{}) {
	l.emit(LevelInfo, "INFO", color.BlueString, format, args...)
}

func (l *Leveled) Warn(format string, args ...interface{}) {
	l.emit(LevelWarn, "WARN", color.YellowString, format, args...)
}

func (l *Leveled) Error(format string, args ...interface{}) {
	l.emit(LevelError, "ERROR", color.RedString, format, args...)
}

func (l *Leveled) emit(level Level, prefix string, paint func(string, ...interface{}) string, format string, args ...interface{}) {
	if l.level > level {
		return
	}
	if l.useColors {
		prefix = paint(prefix)
	}
	fmt.Fprintf(l.out, "[%s %s] %s\n", time.Now().Format("15:04:05.000"), prefix, fmt.Sprintf(format, args...))
}
