package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo predictions and schedule into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM player_predictions`); err != nil {
		return wrapQueryError("count predictions for bootstrap seed", err)
	}
	if count > 0 {
		return nil
	}

	if err := NewScheduleRepository(db).SaveSchedule(ctx, memory.SeedSchedule()); err != nil {
		return fmt.Errorf("seed schedule: %w", err)
	}
	if err := NewPredictionRepository(db).UpsertPredictions(ctx, memory.SeedPredictions()); err != nil {
		return fmt.Errorf("seed predictions: %w", err)
	}

	return nil
}
