package cache

import (
	"context"

	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
	"github.com/riskibarqy/scouting-panel/internal/domain/scout"
	basecache "github.com/riskibarqy/scouting-panel/internal/platform/cache"
)

const (
	kpiPrefix      = "kpi:"
	scoutCodesKey  = "scout:codes"
	kpiCacheName   = "kpi"
	scoutCacheName = "scout"
)

// KPIRepository caches rows per window. Availability is rescaled inside the
// loader so every cached copy already holds percentages.
type KPIRepository struct {
	next  kpi.Repository
	cache *basecache.Store
	opts  options
}

// NewKPIRepository wraps next. A nil store disables caching but keeps the
// rescale step.
func NewKPIRepository(next kpi.Repository, cache *basecache.Store, opts ...Option) *KPIRepository {
	return &KPIRepository{next: next, cache: cache, opts: buildOptions(cache, opts)}
}

func (r *KPIRepository) ListByWindow(ctx context.Context, window kpi.WindowSpec) ([]kpi.PlayerRow, error) {
	if r.cache == nil {
		return r.load(ctx, window)
	}

	key := kpiPrefix + string(window.Window)
	loaded := false
	v, err := r.cache.GetOrLoadTTL(ctx, key, r.opts.ttl, func(ctx context.Context) (any, error) {
		loaded = true
		var shared []playerRowDTO
		if r.opts.readShared(ctx, kpiCacheName, key, &shared) {
			return rowsFromDTO(shared), nil
		}

		rows, err := r.load(ctx, window)
		if err != nil {
			return nil, err
		}
		r.opts.writeShared(ctx, kpiCacheName, key, rowsToDTO(rows))
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	if loaded {
		r.opts.metrics.RecordCacheMiss(kpiCacheName)
	} else {
		r.opts.metrics.RecordCacheHit(kpiCacheName)
	}

	rows, _ := v.([]kpi.PlayerRow)
	return append([]kpi.PlayerRow(nil), rows...), nil
}

func (r *KPIRepository) load(ctx context.Context, window kpi.WindowSpec) ([]kpi.PlayerRow, error) {
	rows, err := r.next.ListByWindow(ctx, window)
	if err != nil {
		return nil, err
	}
	return kpi.RescaleAvailability(rows), nil
}

// Invalidate drops every cached window from both levels.
func (r *KPIRepository) Invalidate(ctx context.Context) int {
	if r.cache == nil {
		return 0
	}
	n := r.cache.DeletePrefix(ctx, kpiPrefix)
	n += r.opts.dropShared(ctx, kpiCacheName, kpiPrefix)
	r.opts.metrics.AddInvalidated(n)
	return n
}

type ScoutRepository struct {
	next  scout.Repository
	cache *basecache.Store
	opts  options
}

func NewScoutRepository(next scout.Repository, cache *basecache.Store, opts ...Option) *ScoutRepository {
	return &ScoutRepository{next: next, cache: cache, opts: buildOptions(cache, opts)}
}

func (r *ScoutRepository) ListCodes(ctx context.Context) ([]scout.Code, error) {
	if r.cache == nil {
		return r.next.ListCodes(ctx)
	}

	loaded := false
	v, err := r.cache.GetOrLoadTTL(ctx, scoutCodesKey, r.opts.ttl, func(ctx context.Context) (any, error) {
		loaded = true
		var shared []scoutCodeDTO
		if r.opts.readShared(ctx, scoutCacheName, scoutCodesKey, &shared) {
			return codesFromDTO(shared), nil
		}

		codes, err := r.next.ListCodes(ctx)
		if err != nil {
			return nil, err
		}
		codes = append([]scout.Code(nil), codes...)
		r.opts.writeShared(ctx, scoutCacheName, scoutCodesKey, codesToDTO(codes))
		return codes, nil
	})
	if err != nil {
		return nil, err
	}
	if loaded {
		r.opts.metrics.RecordCacheMiss(scoutCacheName)
	} else {
		r.opts.metrics.RecordCacheHit(scoutCacheName)
	}

	codes, _ := v.([]scout.Code)
	return append([]scout.Code(nil), codes...), nil
}

func (r *ScoutRepository) Invalidate(ctx context.Context) int {
	if r.cache == nil {
		return 0
	}
	n := r.cache.DeletePrefix(ctx, scoutCodesKey)
	n += r.opts.dropShared(ctx, scoutCacheName, scoutCodesKey)
	r.opts.metrics.AddInvalidated(n)
	return n
}
