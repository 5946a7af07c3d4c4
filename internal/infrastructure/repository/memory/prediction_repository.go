package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/player"
)

type PredictionRepository struct {
	mu      sync.RWMutex
	records []player.Record
}

func NewPredictionRepository(records []player.Record) *PredictionRepository {
	return &PredictionRepository{records: append([]player.Record(nil), records...)}
}

func (r *PredictionRepository) ListPredictions(_ context.Context) ([]player.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Record, 0, len(r.records))
	out = append(out, r.records...)
	return out, nil
}

// Replace swaps the whole prediction set, as a new predictor run would.
func (r *PredictionRepository) Replace(records []player.Record) {
	r.mu.Lock()
	r.records = append([]player.Record(nil), records...)
	r.mu.Unlock()
}
