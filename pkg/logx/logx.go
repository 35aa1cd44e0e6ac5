// Package logx provides leveled logging for the engine.
package logx

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
)

// Level controls which messages are emitted.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	current atomic.Int32
	std     = log.New(os.Stderr, "", log.LstdFlags)
)

func init() {
	current.Store(int32(LevelInfo))
}

// SetLevel sets the minimum level that will be logged.
func SetLevel(l Level) {
	current.Store(int32(l))
}

func enabled(l Level) bool {
	return int32(l) >= current.Load()
}

func emit(l Level, tag, msg string) {
	if !enabled(l) {
		return
	}
	std.Printf("%s %s", tag, msg)
}

// Debug logs a debug message.
func Debug(msg string) { emit(LevelDebug, "DEBUG", msg) }

// Debugf logs a formatted debug message.
func Debugf(format string, args ...any) {
	emit(LevelDebug, "DEBUG", fmt.Sprintf(format, args...))
}

// Info logs an informational message.
func Info(msg string) { emit(LevelInfo, "INFO", msg) }

// Infof logs a formatted informational message.
func Infof(format string, args ...any) {
	emit(LevelInfo, "INFO", fmt.Sprintf(format, args...))
}

// Warn logs a warning.
func Warn(msg string) { emit(LevelWarn, "WARN", msg) }

// Warnf logs a formatted warning.
func Warnf(format string, args ...any) {
	emit(LevelWarn, "WARN", fmt.Sprintf(format, args...))
}

// Error logs an error message.
func Error(msg string) { emit(LevelError, "ERROR", msg) }

// Errorf logs a formatted error message.
func Errorf(format string, args ...any) {
	emit(LevelError, "ERROR", fmt.Sprintf(format, args...))
}

// Fatalf logs a formatted error message and exits the process.
func Fatalf(format string, args ...any) {
	std.Printf("FATAL %s", fmt.Sprintf(format, args...))
	os.Exit(1)
}
