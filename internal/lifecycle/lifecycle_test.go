package lifecycle

import (
	"testing"
	"time"
)

func TestIsShuttingDown_DefaultFalse(t *testing.T) {
	SetShuttingDown(false)
	if IsShuttingDown() {
		t.Error("IsShuttingDown() = true, want false by default")
	}
	if d := DrainDuration(); d != 0 {
		t.Errorf("DrainDuration() = %v while serving, want 0", d)
	}
}

func TestSetShuttingDown_StartsDrainClock(t *testing.T) {
	SetShuttingDown(true)
	defer SetShuttingDown(false)
	if !IsShuttingDown() {
		t.Fatal("IsShuttingDown() = false after SetShuttingDown(true), want true")
	}

	time.Sleep(5 * time.Millisecond)
	first := DrainDuration()
	if first <= 0 {
		t.Fatalf("DrainDuration() = %v, want > 0", first)
	}

	// A second signal keeps the original start time.
	SetShuttingDown(true)
	if DrainDuration() < first {
		t.Error("DrainDuration() went backwards after repeated SetShuttingDown(true)")
	}
}

func TestSetShuttingDown_FalseResets(t *testing.T) {
	SetShuttingDown(true)
	SetShuttingDown(false)
	if IsShuttingDown() {
		t.Error("IsShuttingDown() = true after SetShuttingDown(false), want false")
	}
	if d := DrainDuration(); d != 0 {
		t.Errorf("DrainDuration() = %v after reset, want 0", d)
	}
}

func TestUptime_Positive(t *testing.T) {
	if Uptime() <= 0 {
		t.Errorf("Uptime() = %v, want > 0", Uptime())
	}
}
