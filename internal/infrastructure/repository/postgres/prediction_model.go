package postgres

import "time"

type predictionTableModel struct {
	PlayerID        string    `db:"player_id"`
	Name            string    `db:"name"`
	TeamName        string    `db:"team_name"`
	Position        string    `db:"position"`
	NowCost         int64     `db:"now_cost"`
	PredictedPoints float64   `db:"predicted_points"`
	UpdatedAt       time.Time `db:"updated_at"`
}
