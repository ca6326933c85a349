package guarded

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
	"github.com/riskibarqy/scouting-panel/internal/domain/scout"
	"github.com/riskibarqy/scouting-panel/internal/platform/logging"
	"github.com/riskibarqy/scouting-panel/internal/platform/metrics"
	"github.com/riskibarqy/scouting-panel/internal/platform/resilience"
)

type kpiRepoFunc func(ctx context.Context, window kpi.WindowSpec) ([]kpi.PlayerRow, error)

func (f kpiRepoFunc) ListByWindow(ctx context.Context, window kpi.WindowSpec) ([]kpi.PlayerRow, error) {
	return f(ctx, window)
}

type scoutRepoFunc func(ctx context.Context) ([]scout.Code, error)

func (f scoutRepoFunc) ListCodes(ctx context.Context) ([]scout.Code, error) {
	return f(ctx)
}

func newTestGuard(timeout time.Duration) *Guard {
	return NewGuard(Config{
		Backend:      "postgres",
		QueryTimeout: timeout,
		Circuit: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, metrics.NewManager(), logging.NewNop())
}

func TestKPIRepository_OpensAfterFailures(t *testing.T) {
	calls := 0
	repo := NewKPIRepository(kpiRepoFunc(func(context.Context, kpi.WindowSpec) ([]kpi.PlayerRow, error) {
		calls++
		return nil, errors.New("connection reset")
	}), newTestGuard(0))

	for i := 0; i < 2; i++ {
		if _, err := repo.ListByWindow(context.Background(), kpi.DefaultWindow()); err == nil {
			t.Fatalf("expected warehouse error on call %d", i)
		}
	}
	if repo.guard.State() != resilience.CircuitStateOpen {
		t.Fatalf("expected open breaker, got %s", repo.guard.State())
	}

	_, err := repo.ListByWindow(context.Background(), kpi.DefaultWindow())
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("open breaker must not reach the warehouse, got %d calls", calls)
	}
}

func TestKPIRepository_AppliesQueryTimeout(t *testing.T) {
	repo := NewKPIRepository(kpiRepoFunc(func(ctx context.Context, _ kpi.WindowSpec) ([]kpi.PlayerRow, error) {
		if _, ok := ctx.Deadline(); !ok {
			t.Fatalf("expected query deadline")
		}
		return []kpi.PlayerRow{{Name: kpi.Some("Pedro")}}, nil
	}), newTestGuard(time.Second))

	rows, err := repo.ListByWindow(context.Background(), kpi.DefaultWindow())
	if err != nil {
		t.Fatalf("list rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestKPIRepository_CancellationKeepsBreakerClosed(t *testing.T) {
	repo := NewKPIRepository(kpiRepoFunc(func(ctx context.Context, _ kpi.WindowSpec) ([]kpi.PlayerRow, error) {
		return nil, ctx.Err()
	}), newTestGuard(0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 3; i++ {
		if _, err := repo.ListByWindow(ctx, kpi.DefaultWindow()); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	}
	if repo.guard.State() != resilience.CircuitStateClosed {
		t.Fatalf("client cancellation must not trip the breaker, got %s", repo.guard.State())
	}
}

func TestScoutRepository_DisabledBreaker(t *testing.T) {
	guard := NewGuard(Config{Backend: "memory"}, nil, nil)
	calls := 0
	repo := NewScoutRepository(scoutRepoFunc(func(context.Context) ([]scout.Code, error) {
		calls++
		return nil, errors.New("boom")
	}), guard)

	for i := 0; i < 10; i++ {
		if _, err := repo.ListCodes(context.Background()); err == nil {
			t.Fatalf("expected error")
		}
	}
	if calls != 10 || guard.State() != resilience.CircuitStateClosed {
		t.Fatalf("disabled breaker must pass every call, calls=%d state=%s", calls, guard.State())
	}
}
