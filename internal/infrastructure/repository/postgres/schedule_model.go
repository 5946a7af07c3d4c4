package postgres

import "database/sql"

type teamTableModel struct {
	TeamID string `db:"team_id"`
	Name   string `db:"name"`
}

type eventTableModel struct {
	ID        int    `db:"id"`
	Name      string `db:"name"`
	IsCurrent bool   `db:"is_current"`
	IsNext    bool   `db:"is_next"`
	Finished  bool   `db:"finished"`
}

type fixtureTableModel struct {
	FixtureID      string        `db:"fixture_id"`
	Gameweek       sql.NullInt64 `db:"gameweek"`
	HomeTeamID     string        `db:"home_team_id"`
	AwayTeamID     string        `db:"away_team_id"`
	HomeDifficulty int           `db:"home_difficulty"`
	AwayDifficulty int           `db:"away_difficulty"`
	KickoffAt      sql.NullTime  `db:"kickoff_at"`
	Finished       bool          `db:"finished"`
}
