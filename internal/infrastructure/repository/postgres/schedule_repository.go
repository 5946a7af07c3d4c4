package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/fixture"
	qb "github.com/riskibarqy/fpl-squad-optimizer/internal/platform/querybuilder"
)

type ScheduleRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db, now: time.Now}
}

func (r *ScheduleRepository) GetSchedule(ctx context.Context) (fixture.Schedule, error) {
	teams, err := r.listTeams(ctx)
	if err != nil {
		return fixture.Schedule{}, err
	}
	events, err := r.listEvents(ctx)
	if err != nil {
		return fixture.Schedule{}, err
	}
	fixtures, err := r.listFixtures(ctx)
	if err != nil {
		return fixture.Schedule{}, err
	}

	return fixture.Schedule{
		Events:    events,
		Fixtures:  fixtures,
		TeamNames: teams,
	}, nil
}

func (r *ScheduleRepository) listTeams(ctx context.Context) (map[string]string, error) {
	query, args, err := qb.Select("team_id", "name").From("fpl_teams").
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapQueryError("select teams", err)
	}

	// An empty directory is reported as nil so team ids stand in for names.
	if len(rows) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.TeamID] = row.Name
	}
	return out, nil
}

func (r *ScheduleRepository) listEvents(ctx context.Context) ([]fixture.Event, error) {
	query, args, err := qb.Select("id", "name", "is_current", "is_next", "finished").From("fpl_events").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select events query: %w", err)
	}

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapQueryError("select events", err)
	}

	out := make([]fixture.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixture.Event{
			ID:        row.ID,
			Name:      row.Name,
			IsCurrent: row.IsCurrent,
			IsNext:    row.IsNext,
			Finished:  row.Finished,
		})
	}
	return out, nil
}

func (r *ScheduleRepository) listFixtures(ctx context.Context) ([]fixture.Fixture, error) {
	query, args, err := qb.Select(
		"fixture_id",
		"gameweek",
		"home_team_id",
		"away_team_id",
		"home_difficulty",
		"away_difficulty",
		"kickoff_at",
		"finished",
	).From("fpl_fixtures").
		OrderBy("gameweek NULLS LAST", "kickoff_at", "fixture_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapQueryError("select fixtures", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixture.Fixture{
			ID:             row.FixtureID,
			Gameweek:       nullInt64ToInt(row.Gameweek),
			HomeTeamID:     row.HomeTeamID,
			AwayTeamID:     row.AwayTeamID,
			HomeDifficulty: row.HomeDifficulty,
			AwayDifficulty: row.AwayDifficulty,
			KickoffAt:      nullTimeToPtr(row.KickoffAt),
			Finished:       row.Finished,
		})
	}
	return out, nil
}

// SaveSchedule upserts teams, events and fixtures in one transaction.
// The current/next flags are cleared first so only the incoming calendar holds them.
func (r *ScheduleRepository) SaveSchedule(ctx context.Context, schedule fixture.Schedule) error {
	for _, item := range schedule.Fixtures {
		if strings.TrimSpace(item.ID) == "" {
			return fmt.Errorf("fixture id is required")
		}
		if err := item.Validate(); err != nil {
			return fmt.Errorf("validate fixture %s: %w", item.ID, err)
		}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrapQueryError("begin save schedule tx", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := r.now().UTC()
	statements := make([]func() (string, []any, error), 0, 4)
	if len(schedule.TeamNames) > 0 {
		statements = append(statements, func() (string, []any, error) {
			return buildTeamUpsert(schedule.TeamNames, now)
		})
	}
	if len(schedule.Events) > 0 {
		statements = append(statements,
			func() (string, []any, error) {
				return qb.Update("fpl_events").
					Set("is_current", false).
					Set("is_next", false).
					Set("updated_at", now).
					Where(qb.Expr("(is_current OR is_next)")).
					ToSQL()
			},
			func() (string, []any, error) {
				return buildEventUpsert(schedule.Events, now)
			},
		)
	}
	if len(schedule.Fixtures) > 0 {
		statements = append(statements, func() (string, []any, error) {
			return buildFixtureUpsert(schedule.Fixtures, now)
		})
	}

	for _, build := range statements {
		query, args, err := build()
		if err != nil {
			return fmt.Errorf("build save schedule query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return wrapQueryError("save schedule", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapQueryError("commit save schedule tx", err)
	}
	return nil
}

func buildTeamUpsert(teams map[string]string, now time.Time) (string, []any, error) {
	builder := qb.InsertInto("fpl_teams").Columns("team_id", "name", "updated_at")
	for _, id := range sortedKeys(teams) {
		builder.Values(id, teams[id], now)
	}
	return builder.OnConflict("team_id").DoUpdate("name", "updated_at").ToSQL()
}

func buildEventUpsert(events []fixture.Event, now time.Time) (string, []any, error) {
	builder := qb.InsertInto("fpl_events").
		Columns("id", "name", "is_current", "is_next", "finished", "updated_at")
	for _, item := range events {
		builder.Values(item.ID, item.Name, item.IsCurrent, item.IsNext, item.Finished, now)
	}
	return builder.
		OnConflict("id").
		DoUpdate("name", "is_current", "is_next", "finished", "updated_at").
		ToSQL()
}

func buildFixtureUpsert(fixtures []fixture.Fixture, now time.Time) (string, []any, error) {
	builder := qb.InsertInto("fpl_fixtures").Columns(
		"fixture_id",
		"gameweek",
		"home_team_id",
		"away_team_id",
		"home_difficulty",
		"away_difficulty",
		"kickoff_at",
		"finished",
		"updated_at",
	)
	for _, item := range fixtures {
		builder.Values(
			item.ID,
			gameweekToNull(item.Gameweek),
			item.HomeTeamID,
			item.AwayTeamID,
			item.HomeDifficulty,
			item.AwayDifficulty,
			timePtrToNull(item.KickoffAt),
			item.Finished,
			now,
		)
	}
	return builder.
		OnConflict("fixture_id").
		DoUpdate("gameweek", "home_team_id", "away_team_id", "home_difficulty", "away_difficulty", "kickoff_at", "finished", "updated_at").
		ToSQL()
}
