package monitoring

import (
	"io"
	"log"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Configure sends diagnostics to w when verbose is set and mutes them
// otherwise.
func Configure(w io.Writer, verbose bool) {
	if !verbose {
		SetLogger(nil)
		return
	}
	SetLogger(log.New(w, "beaconmap: ", log.LstdFlags|log.Lmicroseconds).Printf)
}
