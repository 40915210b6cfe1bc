package logger

import (
	"io"
	"log"
	"os"
	"sync/atomic"
)

var (
	debugEnabled atomic.Bool
	infoLogger   = log.New(os.Stderr, "", log.LstdFlags)
	errorLogger  = log.New(os.Stderr, "[ERROR] ", log.LstdFlags)
	debugLogger  = log.New(os.Stderr, "[DEBUG] ", log.LstdFlags)
)

// SetDebug enables or disables debug logging
func SetDebug(enabled bool) {
	debugEnabled.Store(enabled)
}

// SetOutput redirects all levels to w. Tests use it to capture log lines.
func SetOutput(w io.Writer) {
	infoLogger.SetOutput(w)
	errorLogger.SetOutput(w)
	debugLogger.SetOutput(w)
}

// Info logs an informational message
func Info(format string, args ...any) {
	infoLogger.Printf(format, args...)
}

// Error logs an error message
func Error(format string, args ...any) {
	errorLogger.Printf(format, args...)
}

// Debug logs a debug message if debug logging is enabled
func Debug(format string, args ...any) {
	if debugEnabled.Load() {
		debugLogger.Printf(format, args...)
	}
}

// Fatal logs an error message and exits with status 1
func Fatal(format string, args ...any) {
	errorLogger.Printf(format, args...)
	os.Exit(1)
}
