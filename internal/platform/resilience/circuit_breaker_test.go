package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestBreaker(now *time.Time) *CircuitBreaker {
	b := NewCircuitBreaker("warehouse", CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      5 * time.Second,
		HalfOpenMaxReq:   1,
	})
	b.now = func() time.Time { return *now }
	return b
}

func TestCircuitBreaker_Transitions(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := newTestBreaker(&now)

	var transitions []CircuitState
	b.OnStateChange(func(name string, _, to CircuitState) {
		if name != "warehouse" {
			t.Errorf("unexpected breaker name %q", name)
		}
		transitions = append(transitions, to)
	})

	failure := errors.New("query failed")
	failing := func(context.Context) error { return failure }

	if err := b.Do(context.Background(), failing); !errors.Is(err, failure) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	_ = b.Do(context.Background(), failing)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	called := false
	err := b.Do(context.Background(), func(context.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("expected refused call while open, err=%v called=%v", err, called)
	}

	now = now.Add(6 * time.Second)
	if err := b.Do(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}

	want := []CircuitState{CircuitStateOpen, CircuitStateHalfOpen, CircuitStateClosed}
	if len(transitions) != len(want) {
		t.Fatalf("unexpected transitions: %v", transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("unexpected transitions: got=%v want=%v", transitions, want)
		}
	}
}

func TestCircuitBreaker_CancellationIsNotAFailure(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := newTestBreaker(&now)

	canceled := func(context.Context) error { return context.Canceled }
	for i := 0; i < 5; i++ {
		_ = b.Do(context.Background(), canceled)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after cancellations, got %s", state)
	}
}
