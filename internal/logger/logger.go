// Package logger provides verbose logging for the permeability service.
// When verbose mode is enabled via the --verbose flag (or log.verbose in the
// config file), debug and info messages are printed to stderr so users can
// follow each correction through the pipeline. Errors are always printed.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu         sync.RWMutex
	verbose    bool
	timestamps bool
	output     io.Writer = os.Stderr
	now                  = time.Now
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetTimestamps prefixes each line with an RFC 3339 UTC timestamp.
// The HTTP server turns this on; one-shot commands leave it off.
func SetTimestamps(v bool) {
	mu.Lock()
	defer mu.Unlock()
	timestamps = v
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(false, "DEBUG", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf(false, "INFO", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	logf(false, "WARN", format, args...)
}

// Error prints an error message regardless of verbose mode.
func Error(format string, args ...any) {
	logf(true, "ERROR", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

func logf(always bool, level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !always && !verbose {
		return
	}
	prefix := "[" + level + "] "
	if timestamps {
		prefix = now().UTC().Format(time.RFC3339) + " " + prefix
	}
	fmt.Fprintf(output, prefix+format+"\n", args...)
}
