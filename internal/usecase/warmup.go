package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
)

type WarmupResult struct {
	Loaded   int
	Failed   int
	Duration time.Duration
}

// Warmup loads the reference table and every window once through the
// repositories, workers at a time. Failures are logged and counted; the
// next request retries them.
func (s *PanelService) Warmup(ctx context.Context, workers int) (WarmupResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PanelService.Warmup")
	defer span.End()

	if workers <= 0 {
		workers = 1
	}
	startedAt := time.Now()

	pool, err := ants.NewPool(workers)
	if err != nil {
		return WarmupResult{}, fmt.Errorf("create warmup pool: %w", err)
	}
	defer pool.Release()

	var loaded atomic.Int32
	var failed atomic.Int32
	var wg sync.WaitGroup

	submit := func(name string, load func(context.Context) error) error {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if err := load(ctx); err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "cache warmup failed", "target", name, "error", err)
				return
			}
			loaded.Add(1)
		}); err != nil {
			wg.Done()
			return fmt.Errorf("submit warmup of %s: %w", name, err)
		}
		return nil
	}

	if err := submit("scout_points", func(ctx context.Context) error {
		_, err := s.scoutRepo.ListCodes(ctx)
		return err
	}); err != nil {
		wg.Wait()
		return WarmupResult{}, err
	}
	for _, window := range kpi.Windows() {
		if err := submit(window.View, func(ctx context.Context) error {
			_, err := s.kpiRepo.ListByWindow(ctx, window)
			return err
		}); err != nil {
			wg.Wait()
			return WarmupResult{}, err
		}
	}
	wg.Wait()

	result := WarmupResult{
		Loaded:   int(loaded.Load()),
		Failed:   int(failed.Load()),
		Duration: time.Since(startedAt),
	}
	s.metrics.ObserveWarmup(result.Duration.Seconds())
	s.logger.InfoContext(ctx, "cache warmup finished",
		"loaded", result.Loaded,
		"failed", result.Failed,
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}
