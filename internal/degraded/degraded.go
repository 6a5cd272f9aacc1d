// Package degraded tracks upstream reachability over a sliding window so /health can
// report when the provider keeps failing.
package degraded

import (
	"sync"
	"time"
)

// Policy decides when an unreachable rate counts as degraded. A zero Window or
// ErrorPct disables the check.
type Policy struct {
	Window   time.Duration
	ErrorPct int
}

// Enabled reports whether the policy can ever trip.
func (p Policy) Enabled() bool {
	return p.Window > 0 && p.ErrorPct > 0
}

// Tracker keeps timestamps of upstream outcomes. Success means upstream answered
// with any HTTP status; error means it could not be reached.
type Tracker struct {
	mu           sync.Mutex
	maxAge       time.Duration
	successTimes []time.Time
	errorTimes   []time.Time
	now          func() time.Time
}

// NewTracker returns a Tracker that forgets outcomes older than maxAge.
func NewTracker(maxAge time.Duration) *Tracker {
	if maxAge <= 0 {
		maxAge = 5 * time.Minute
	}
	return &Tracker{maxAge: maxAge, now: time.Now}
}

// RecordSuccess records that upstream answered.
func (t *Tracker) RecordSuccess() {
	t.record(&t.successTimes)
}

// RecordError records that upstream could not be reached.
func (t *Tracker) RecordError() {
	t.record(&t.errorTimes)
}

func (t *Tracker) record(slice *[]time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	*slice = append(*slice, now)
	t.pruneLocked(now)
}

// ErrorRate returns (errorCount, totalCount) within the window.
func (t *Tracker) ErrorRate(window time.Duration) (errors, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cutoff := t.now().Add(-window)
	errCount := countSince(t.errorTimes, cutoff)
	return errCount, errCount + countSince(t.successTimes, cutoff)
}

// Degraded reports whether the error share within p.Window reached p.ErrorPct.
// An empty window is never degraded.
func (t *Tracker) Degraded(p Policy) bool {
	if !p.Enabled() {
		return false
	}
	errors, total := t.ErrorRate(p.Window)
	if total == 0 {
		return false
	}
	return errors*100 >= p.ErrorPct*total
}

// Reset forgets every recorded outcome.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.successTimes = nil
	t.errorTimes = nil
}

func countSince(times []time.Time, cutoff time.Time) int {
	n := 0
	for _, ts := range times {
		if !ts.Before(cutoff) {
			n++
		}
	}
	return n
}

// pruneLocked drops timestamps older than maxAge. Must be called with mu held.
func (t *Tracker) pruneLocked(now time.Time) {
	cutoff := now.Add(-t.maxAge)
	prune := func(slice *[]time.Time) {
		times := *slice
		i := 0
		for ; i < len(times) && times[i].Before(cutoff); i++ {
		}
		if i > 0 {
			*slice = append(times[:0], times[i:]...)
		}
	}
	prune(&t.successTimes)
	prune(&t.errorTimes)
}
