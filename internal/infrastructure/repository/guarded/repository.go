// Package guarded wraps warehouse repositories with a circuit breaker, a
// per-query deadline and query metrics.
package guarded

import (
	"context"
	"errors"
	"time"

	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
	"github.com/riskibarqy/scouting-panel/internal/domain/scout"
	"github.com/riskibarqy/scouting-panel/internal/platform/logging"
	"github.com/riskibarqy/scouting-panel/internal/platform/metrics"
	"github.com/riskibarqy/scouting-panel/internal/platform/resilience"
)

// Guard is shared by every repository of one warehouse backend so they trip
// together.
type Guard struct {
	backend string
	timeout time.Duration
	breaker *resilience.CircuitBreaker
	metrics *metrics.Manager
	logger  *logging.Logger
}

type Config struct {
	Backend      string
	QueryTimeout time.Duration
	Circuit      resilience.CircuitBreakerConfig
}

func NewGuard(cfg Config, m *metrics.Manager, logger *logging.Logger) *Guard {
	if logger == nil {
		logger = logging.Default()
	}
	g := &Guard{
		backend: cfg.Backend,
		timeout: cfg.QueryTimeout,
		metrics: m,
		logger:  logger,
	}
	if cfg.Circuit.Enabled {
		g.breaker = resilience.NewCircuitBreaker("warehouse_"+cfg.Backend, cfg.Circuit)
		g.breaker.OnStateChange(func(name string, from, to resilience.CircuitState) {
			g.logger.Warn("warehouse circuit breaker state changed", "breaker", name, "from", from, "to", to)
			g.metrics.SetCircuitState(name, string(to))
		})
		m.SetCircuitState(g.breaker.Name(), string(resilience.CircuitStateClosed))
	}
	return g
}

// State reports the breaker state; closed when the breaker is disabled.
func (g *Guard) State() resilience.CircuitState {
	if g == nil || g.breaker == nil {
		return resilience.CircuitStateClosed
	}
	return g.breaker.State()
}

func (g *Guard) run(ctx context.Context, query string, fn func(context.Context) error) error {
	if g == nil {
		return fn(ctx)
	}
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	startedAt := time.Now()
	err := g.breaker.Do(ctx, fn)
	if errors.Is(err, resilience.ErrCircuitOpen) {
		g.logger.WarnContext(ctx, "warehouse query rejected by circuit breaker", "backend", g.backend, "query", query)
		return err
	}

	g.metrics.ObserveQuery(g.backend, query, time.Since(startedAt).Seconds(), err != nil && !errors.Is(err, context.Canceled))
	if err != nil && !errors.Is(err, context.Canceled) {
		g.logger.ErrorContext(ctx, "warehouse query failed", "backend", g.backend, "query", query, "error", err)
	}
	return err
}

type KPIRepository struct {
	next  kpi.Repository
	guard *Guard
}

func NewKPIRepository(next kpi.Repository, guard *Guard) *KPIRepository {
	return &KPIRepository{next: next, guard: guard}
}

func (r *KPIRepository) ListByWindow(ctx context.Context, window kpi.WindowSpec) ([]kpi.PlayerRow, error) {
	var rows []kpi.PlayerRow
	err := r.guard.run(ctx, window.View, func(ctx context.Context) error {
		var err error
		rows, err = r.next.ListByWindow(ctx, window)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type ScoutRepository struct {
	next  scout.Repository
	guard *Guard
}

func NewScoutRepository(next scout.Repository, guard *Guard) *ScoutRepository {
	return &ScoutRepository{next: next, guard: guard}
}

func (r *ScoutRepository) ListCodes(ctx context.Context) ([]scout.Code, error) {
	var codes []scout.Code
	err := r.guard.run(ctx, "scout_points", func(ctx context.Context) error {
		var err error
		codes, err = r.next.ListCodes(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return codes, nil
}
