package player

import "context"

// PredictionRepository exposes the raw point predictions produced upstream.
// Returned records carry RawPredictedPoints only; fixture adjustment happens per run.
type PredictionRepository interface {
	ListPredictions(ctx context.Context) ([]Record, error)
}
