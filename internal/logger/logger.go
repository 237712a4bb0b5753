// Package logger provides a simple levelled logging utility for the CLI.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level represents the logging level
type Level int

const (
	// LevelOff disables all logging, warnings included
	LevelOff Level = iota
	// LevelWarn shows only warnings and errors (default)
	LevelWarn
	// LevelInfo shows basic progress information
	LevelInfo
	// LevelDebug shows detailed debugging information
	LevelDebug
)

var (
	mu           sync.Mutex
	currentLevel Level     = LevelWarn
	startTime    time.Time = time.Now()
	out          io.Writer = os.Stderr
)

// SetLevel sets the global logging level
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	currentLevel = level
	startTime = time.Now()
}

// GetLevel returns the current logging level
func GetLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return currentLevel
}

// SetOutput redirects log output. It returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

// LevelFromFlags maps the --verbose and --debug flags to a level.
func LevelFromFlags(verbose, debug bool) Level {
	switch {
	case debug:
		return LevelDebug
	case verbose:
		return LevelInfo
	default:
		return LevelWarn
	}
}

// IsVerbose returns true if verbose logging is enabled
func IsVerbose() bool {
	return GetLevel() >= LevelInfo
}

// IsDebug returns true if debug logging is enabled
func IsDebug() bool {
	return GetLevel() >= LevelDebug
}

// Info logs an informational message (shown with --verbose)
func Info(format string, args ...interface{}) {
	logf(LevelInfo, "", format, args...)
}

// Debug logs a debug message (shown with --debug)
func Debug(format string, args ...interface{}) {
	logf(LevelDebug, "[DEBUG] ", format, args...)
}

// Warn logs a non-fatal condition. Shown unless logging is off.
func Warn(format string, args ...interface{}) {
	logf(LevelWarn, "[WARN] ", format, args...)
}

// Error logs an error message. Shown unless logging is off.
func Error(format string, args ...interface{}) {
	logf(LevelWarn, "[ERROR] ", format, args...)
}

func logf(min Level, tag, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if currentLevel < min {
		return
	}
	elapsed := time.Since(startTime).Round(time.Millisecond)
	prefix := fmt.Sprintf("[%s] %s", elapsed, tag)
	fmt.Fprintf(out, prefix+format+"\n", args...)
}
