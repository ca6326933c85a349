package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/scouting-panel/internal/domain/scout"
)

type ScoutRepository struct {
	mu    sync.RWMutex
	codes []scout.Code
}

func NewScoutRepository(codes []scout.Code) *ScoutRepository {
	return &ScoutRepository{codes: append([]scout.Code(nil), codes...)}
}

func (r *ScoutRepository) ListCodes(_ context.Context) ([]scout.Code, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]scout.Code(nil), r.codes...), nil
}
