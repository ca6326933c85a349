package cache

import (
	"context"
	"time"

	basecache "github.com/riskibarqy/scouting-panel/internal/platform/cache"
	"github.com/riskibarqy/scouting-panel/internal/platform/logging"
	"github.com/riskibarqy/scouting-panel/internal/platform/metrics"
)

// SharedStore is the optional second cache level shared between replicas.
type SharedStore interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}

type options struct {
	ttl     time.Duration
	shared  SharedStore
	metrics *metrics.Manager
	logger  *logging.Logger
}

type Option func(*options)

// WithTTL overrides the store default for this repository's entries.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		o.ttl = ttl
	}
}

func WithShared(shared SharedStore) Option {
	return func(o *options) {
		o.shared = shared
	}
}

func WithMetrics(m *metrics.Manager) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func WithLogger(logger *logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(store *basecache.Store, opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.ttl <= 0 && store != nil {
		o.ttl = store.TTL()
	}
	if o.logger == nil {
		o.logger = logging.Default()
	}
	return o
}

// readShared looks key up in the shared level. Shared failures only log.
func (o options) readShared(ctx context.Context, cacheName, key string, dst any) bool {
	if o.shared == nil {
		return false
	}
	found, err := o.shared.Get(ctx, key, dst)
	if err != nil {
		o.logger.WarnContext(ctx, "shared cache read failed", "cache", cacheName, "key", key, "error", err)
		return false
	}
	if found {
		o.metrics.RecordCacheHit(cacheName + "_shared")
	} else {
		o.metrics.RecordCacheMiss(cacheName + "_shared")
	}
	return found
}

func (o options) writeShared(ctx context.Context, cacheName, key string, value any) {
	if o.shared == nil {
		return
	}
	if err := o.shared.Set(ctx, key, value, o.ttl); err != nil {
		o.logger.WarnContext(ctx, "shared cache write failed", "cache", cacheName, "key", key, "error", err)
	}
}

func (o options) dropShared(ctx context.Context, cacheName, prefix string) int {
	if o.shared == nil {
		return 0
	}
	n, err := o.shared.DeletePrefix(ctx, prefix)
	if err != nil {
		o.logger.WarnContext(ctx, "shared cache invalidation failed", "cache", cacheName, "prefix", prefix, "error", err)
	}
	return n
}
