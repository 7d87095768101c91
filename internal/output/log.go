// Package output provides terminal output utilities for the laravel-docker CLI.
package output

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// LogConfig controls how the global logger is configured.
type LogConfig struct {
	// Verbose enables debug logging, caller reporting and timestamps.
	Verbose bool

	// Timestamps overrides timestamp reporting. Nil means "on".
	// Verbose always forces timestamps on.
	Timestamps *bool
}

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stderr, LogConfig{})
)

func newLogger(w io.Writer, cfg LogConfig) *log.Logger {
	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}

	timestamps := true
	if cfg.Timestamps != nil {
		timestamps = *cfg.Timestamps
	}
	if cfg.Verbose {
		timestamps = true
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: timestamps,
		ReportCaller:    cfg.Verbose,
		TimeFormat:      "15:04:05",
	})
}

// SetupLogging configures the global logger based on cfg.
func SetupLogging(cfg LogConfig) {
	SetupLoggingTo(os.Stderr, cfg)
}

// SetupLoggingTo configures the global logger to write to w.
func SetupLoggingTo(w io.Writer, cfg LogConfig) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w, cfg)
}

// Logger returns the global logger.
func Logger() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// StepLogger returns a child logger prefixed with the given step name,
// e.g. "skeleton" or "install".
func StepLogger(step string) *log.Logger {
	return Logger().WithPrefix(StyleDim.Render("step:") + StyleNoun.Render(step))
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	Logger().Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...interface{}) {
	Logger().Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...interface{}) {
	Logger().Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg string, keyvals ...interface{}) {
	Logger().Error(msg, keyvals...)
}

// Print prints a message to stdout without any formatting.
func Print(msg string) {
	os.Stdout.WriteString(msg)
}

// Println prints a message to stdout with a newline.
func Println(msg string) {
	os.Stdout.WriteString(msg + "\n")
}
