package otel

import (
	"os"
	"sync/atomic"
)

// traceEnabled gates high-volume events such as key presses.
var traceEnabled atomic.Bool

func init() {
	traceEnabled.Store(os.Getenv("BESTIARY_TRACE") != "")
}

// TraceEnabled reports whether BESTIARY_TRACE is set.
func TraceEnabled() bool {
	return traceEnabled.Load()
}

// SetTraceEnabled overrides the flag, for the --trace flag and tests.
func SetTraceEnabled(v bool) {
	traceEnabled.Store(v)
}
