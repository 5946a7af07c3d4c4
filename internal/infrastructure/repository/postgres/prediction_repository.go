package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/player"
	qb "github.com/riskibarqy/fpl-squad-optimizer/internal/platform/querybuilder"
)

// Postgres caps bind parameters at 65535 per statement.
const predictionUpsertBatchSize = 500

type PredictionRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

var predictionSelectColumns = []string{
	"player_id",
	"name",
	"team_name",
	"position",
	"now_cost",
	"predicted_points",
	"updated_at",
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db, now: time.Now}
}

func (r *PredictionRepository) ListPredictions(ctx context.Context) ([]player.Record, error) {
	query, args, err := qb.Select(predictionSelectColumns...).From("player_predictions").
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select predictions query: %w", err)
	}

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapQueryError("select predictions", err)
	}

	out := make([]player.Record, 0, len(rows))
	for _, row := range rows {
		position, err := player.ParsePosition(row.Position)
		if err != nil {
			// Kept as-is so the service can report and skip it.
			position = player.Position(row.Position)
		}
		out = append(out, player.Record{
			ID:                 row.PlayerID,
			Name:               row.Name,
			Team:               row.TeamName,
			Position:           position,
			Price:              row.NowCost,
			RawPredictedPoints: row.PredictedPoints,
		})
	}

	return out, nil
}

// UpsertPredictions writes a predictor run. Existing players are overwritten.
func (r *PredictionRepository) UpsertPredictions(ctx context.Context, records []player.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrapQueryError("begin upsert predictions tx", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := r.now().UTC()
	for start := 0; start < len(records); start += predictionUpsertBatchSize {
		end := min(start+predictionUpsertBatchSize, len(records))
		query, args, err := buildPredictionUpsert(records[start:end], now)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return wrapQueryError("upsert predictions", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapQueryError("commit upsert predictions tx", err)
	}
	return nil
}

func buildPredictionUpsert(records []player.Record, now time.Time) (string, []any, error) {
	builder := qb.InsertInto("player_predictions").
		Columns("player_id", "name", "team_name", "position", "now_cost", "predicted_points", "updated_at")
	for _, item := range records {
		if err := item.Validate(); err != nil {
			return "", nil, fmt.Errorf("validate prediction %s: %w", item.ID, err)
		}
		builder.Values(item.ID, item.Name, item.Team, string(item.Position), item.Price, item.RawPredictedPoints, now)
	}

	query, args, err := builder.
		OnConflict("player_id").
		DoUpdate("name", "team_name", "position", "now_cost", "predicted_points", "updated_at").
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build upsert predictions query: %w", err)
	}
	return query, args, nil
}
