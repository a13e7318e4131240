package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestBreaker_BasicTransitions(t *testing.T) {
	b := NewBreaker(2, 5*time.Second, 1)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != BreakerClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != BreakerOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrBreakerOpen) {
		t.Fatalf("expected breaker open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}

	b.RecordSuccess()
	if state := b.State(); state != BreakerClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}
}

func TestBreaker_HalfOpenProbeLimit(t *testing.T) {
	b := NewBreaker(1, time.Second, 1)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	b.RecordFailure()
	now = now.Add(2 * time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("first probe should pass: %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrBreakerOpen) {
		t.Fatalf("second concurrent probe should be rejected, got %v", err)
	}
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	b := NewBreaker(1, time.Second, 1)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	b.RecordFailure()
	now = now.Add(2 * time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("probe should pass: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != BreakerOpen {
		t.Fatalf("expected open after failed probe, got %s", state)
	}
}

func TestNormalizeBreakerConfig_FillsDefaults(t *testing.T) {
	got := NormalizeBreakerConfig(BreakerConfig{Enabled: true})
	want := DefaultBreakerConfig()

	if got.FailureThreshold != want.FailureThreshold {
		t.Fatalf("failure threshold = %d, want %d", got.FailureThreshold, want.FailureThreshold)
	}
	if got.OpenTimeout != want.OpenTimeout {
		t.Fatalf("open timeout = %s, want %s", got.OpenTimeout, want.OpenTimeout)
	}
	if got.ProbeLimit != want.ProbeLimit {
		t.Fatalf("probe limit = %d, want %d", got.ProbeLimit, want.ProbeLimit)
	}
}
