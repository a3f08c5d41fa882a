// internal/logger/logger.go
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Log levels
const (
	LevelDebug = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu    sync.Mutex
	level = LevelInfo
	out   = log.New(os.Stdout, "", log.LstdFlags)
	errs  = log.New(os.Stderr, "", log.LstdFlags)
)

// SetOutput redirects all log output to w. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	out.SetOutput(w)
	errs.SetOutput(w)
}

// SetLevel sets the minimum level that gets logged.
func SetLevel(levelStr string) {
	mu.Lock()
	defer mu.Unlock()

	switch strings.ToLower(levelStr) {
	case "debug":
		level = LevelDebug
	case "info":
		level = LevelInfo
	case "warn", "warning":
		level = LevelWarn
	case "error":
		level = LevelError
	default:
		level = LevelInfo
	}
}

// Debug logs a debug message
func Debug(format string, v ...interface{}) {
	logf(LevelDebug, out, "[DEBUG] ", format, v...)
}

// Info logs an info message
func Info(format string, v ...interface{}) {
	logf(LevelInfo, out, "[INFO] ", format, v...)
}

// Warn logs a warning message
func Warn(format string, v ...interface{}) {
	logf(LevelWarn, out, "[WARN] ", format, v...)
}

// Error logs an error message
func Error(format string, v ...interface{}) {
	logf(LevelError, errs, "[ERROR] ", format, v...)
}

func logf(msgLevel int, dst *log.Logger, prefix, format string, v ...interface{}) {
	mu.Lock()
	enabled := level <= msgLevel
	mu.Unlock()

	if enabled {
		dst.Output(3, prefix+fmt.Sprintf(format, v...))
	}
}
