// Package debug provides env-gated diagnostic output for pq.
//
// Diagnostics go to stderr when PQ_DEBUG is set or --verbose is passed.
// Quiet mode (--quiet) suppresses normal informational output.
package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	enabled     = os.Getenv("PQ_DEBUG") != ""
	verboseMode = false
	quietMode   = false

	logMutex sync.Mutex
	logOut   io.Writer = os.Stderr
)

func Enabled() bool {
	return enabled || verboseMode
}

// SetVerbose enables verbose/debug output
func SetVerbose(verbose bool) {
	verboseMode = verbose
}

// SetQuiet enables quiet mode (suppress non-essential output)
func SetQuiet(quiet bool) {
	quietMode = quiet
}

// IsQuiet returns true if quiet mode is enabled
func IsQuiet() bool {
	return quietMode
}

// SetOutput redirects diagnostic output. It returns a function that
// restores the previous writer.
func SetOutput(diag io.Writer) (restore func()) {
	logMutex.Lock()
	defer logMutex.Unlock()
	old := logOut
	logOut = diag
	return func() {
		logMutex.Lock()
		defer logMutex.Unlock()
		logOut = old
	}
}

func Logf(format string, args ...interface{}) {
	if !Enabled() {
		return
	}
	logMutex.Lock()
	defer logMutex.Unlock()
	fmt.Fprintf(logOut, format, args...)
}

// Timef logs how long has passed since start, prefixed with label.
func Timef(start time.Time, label string) {
	Logf("%s: %s\n", label, time.Since(start).Round(time.Millisecond))
}

// FprintNormal writes to w unless quiet mode is enabled
// Use this for normal informational output that should be suppressed in quiet mode
func FprintNormal(w io.Writer, format string, args ...interface{}) {
	if !quietMode {
		fmt.Fprintf(w, format, args...)
	}
}

// FprintlnNormal writes a line to w unless quiet mode is enabled
func FprintlnNormal(w io.Writer, args ...interface{}) {
	if !quietMode {
		fmt.Fprintln(w, args...)
	}
}
