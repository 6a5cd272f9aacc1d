// Package lifecycle holds process-wide serving state shared by /health and shutdown.
package lifecycle

import (
	"sync/atomic"
	"time"
)

var (
	startedAt    = time.Now()
	shuttingDown atomic.Bool
	drainStart   atomic.Int64
)

// SetShuttingDown marks the process as draining (true) or serving (false).
// /health reports shutting-down while the flag is set.
func SetShuttingDown(v bool) {
	if v {
		drainStart.CompareAndSwap(0, time.Now().UnixNano())
	} else {
		drainStart.Store(0)
	}
	shuttingDown.Store(v)
}

// IsShuttingDown reports whether the process is draining.
func IsShuttingDown() bool {
	return shuttingDown.Load()
}

// Uptime is the time since the process started.
func Uptime() time.Duration {
	return time.Since(startedAt)
}

// DrainDuration is how long the process has been draining, or 0 when serving.
func DrainDuration() time.Duration {
	start := drainStart.Load()
	if start == 0 {
		return 0
	}
	return time.Since(time.Unix(0, start))
}
