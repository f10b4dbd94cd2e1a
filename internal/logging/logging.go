// Package logging provides leveled logging over the standard log package.
//
// The level is resolved from the environment on first use: DEBUG=1 (or
// true) forces debug logging, otherwise LOG_LEVEL selects one of debug,
// info, warn or error. The default is info.
//
// Diagnostic logging is separate from user-facing progress reporting; the
// download engine reports through progress events, and this package covers
// everything behind it (API traffic, storage, the web server).
package logging

import (
	"log"
	"os"
	"strings"
	"sync"
)

// Level controls which messages are written.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	currentLevel = LevelInfo
	levelOnce    sync.Once
)

// initLevel reads the level from the environment. DEBUG wins over
// LOG_LEVEL so a quick DEBUG=1 run needs no other changes.
func initLevel() {
	if v := os.Getenv("DEBUG"); v == "1" || strings.EqualFold(v, "true") {
		currentLevel = LevelDebug
		return
	}

	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		currentLevel = LevelDebug
	case "info", "":
		currentLevel = LevelInfo
	case "warn", "warning":
		currentLevel = LevelWarn
	case "error":
		currentLevel = LevelError
	}
}

// GetLevel returns the active level, resolving it on first use.
func GetLevel() Level {
	levelOnce.Do(initLevel)
	return currentLevel
}

// IsDebugEnabled reports whether debug messages are being written.
func IsDebugEnabled() bool {
	return GetLevel() <= LevelDebug
}

// Debug logs a debug-level message.
func Debug(format string, args ...any) {
	if GetLevel() <= LevelDebug {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// Info logs an info-level message.
func Info(format string, args ...any) {
	if GetLevel() <= LevelInfo {
		log.Printf("[INFO] "+format, args...)
	}
}

// Warn logs a warning-level message.
func Warn(format string, args ...any) {
	if GetLevel() <= LevelWarn {
		log.Printf("[WARN] "+format, args...)
	}
}

// Error logs an error-level message.
func Error(format string, args ...any) {
	if GetLevel() <= LevelError {
		log.Printf("[ERROR] "+format, args...)
	}
}

// Fatal logs an error-level message and exits the process.
func Fatal(format string, args ...any) {
	log.Printf("[FATAL] "+format, args...)
	os.Exit(1)
}

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}
