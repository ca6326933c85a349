package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/scouting-panel/internal/config"
	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
	"github.com/riskibarqy/scouting-panel/internal/domain/scout"
	cacherepo "github.com/riskibarqy/scouting-panel/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/scouting-panel/internal/infrastructure/repository/guarded"
	"github.com/riskibarqy/scouting-panel/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/scouting-panel/internal/platform/cache"
	"github.com/riskibarqy/scouting-panel/internal/platform/logging"
	"github.com/riskibarqy/scouting-panel/internal/platform/metrics"
	"github.com/riskibarqy/scouting-panel/internal/usecase"
)

// Server is the wired service: the HTTP server plus what must be released
// after it stops.
type Server struct {
	HTTP   *http.Server
	Panel  *usecase.PanelService
	logger *logging.Logger

	warmupEnabled bool
	warmupWorkers int
	closers       []func() error
}

func NewServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	var m *metrics.Manager
	if cfg.MetricsEnabled {
		m = metrics.NewManager(metrics.WithRuntimeCollectors())
	}

	wh, err := openWarehouse(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	srv := &Server{
		logger:        logger,
		warmupEnabled: cfg.CacheWarmupEnabled && cfg.CacheEnabled,
		warmupWorkers: cfg.CacheWarmupWorkers,
		closers:       []func() error{wh.close},
	}

	guard := guarded.NewGuard(guarded.Config{
		Backend:      wh.backend,
		QueryTimeout: cfg.WarehouseQueryTimeout,
		Circuit:      cfg.WarehouseCircuit,
	}, m, logger)

	kpiRepo, scoutRepo, invalidators, err := srv.cachedRepositories(ctx, cfg, m,
		guarded.NewKPIRepository(wh.kpi, guard),
		guarded.NewScoutRepository(wh.scout, guard),
	)
	if err != nil {
		_ = srv.Close()
		return nil, err
	}

	srv.Panel = usecase.NewPanelService(kpiRepo, scoutRepo, logger, m, invalidators...)
	handler := httpapi.NewHandler(srv.Panel, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
		Metrics:            m,
	})

	srv.HTTP = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return srv, nil
}

// cachedRepositories wraps the guarded warehouse with the two-level cache.
// With caching off the decorators still run so availability is rescaled.
func (s *Server) cachedRepositories(
	ctx context.Context,
	cfg config.Config,
	m *metrics.Manager,
	kpiNext kpi.Repository,
	scoutNext scout.Repository,
) (kpi.Repository, scout.Repository, []usecase.CacheInvalidator, error) {
	if !cfg.CacheEnabled {
		s.logger.Info("query cache disabled", "reason", "CACHE_ENABLED=false")
		return cacherepo.NewKPIRepository(kpiNext, nil), cacherepo.NewScoutRepository(scoutNext, nil), nil, nil
	}

	opts := []cacherepo.Option{cacherepo.WithMetrics(m), cacherepo.WithLogger(s.logger)}
	if cfg.RedisEnabled {
		redisStore, err := basecache.DialRedis(ctx, basecache.RedisOptions{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			Namespace: cfg.RedisKeyPrefix,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		s.closers = append(s.closers, redisStore.Close)
		opts = append(opts, cacherepo.WithShared(redisStore))
		s.logger.Info("shared cache enabled", "addr", cfg.RedisAddr, "namespace", cfg.RedisKeyPrefix)
	}

	kpiRepo := cacherepo.NewKPIRepository(kpiNext, basecache.NewStore(cfg.QueryCacheTTL), opts...)
	scoutRepo := cacherepo.NewScoutRepository(scoutNext, basecache.NewStore(cfg.ReferenceCacheTTL), opts...)
	return kpiRepo, scoutRepo, []usecase.CacheInvalidator{kpiRepo, scoutRepo}, nil
}

// Warmup preloads every window when enabled. Failures only cost latency on
// the first request, so they are logged and not returned.
func (s *Server) Warmup(ctx context.Context) {
	if !s.warmupEnabled {
		return
	}
	if _, err := s.Panel.Warmup(ctx, s.warmupWorkers); err != nil {
		s.logger.WarnContext(ctx, "cache warmup aborted", "error", err)
	}
}

func (s *Server) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
