package player

import (
	"fmt"
	"math"
	"strings"
)

// Position represents football position categories used in fantasy rules.
type Position string

const (
	PositionGoalkeeper Position = "GKP"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// ParsePosition accepts the canonical codes plus the numeric element types
// used by the FPL API (1..4) and the short "GK" alias.
func ParsePosition(raw string) (Position, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "GKP", "GK", "1":
		return PositionGoalkeeper, nil
	case "DEF", "2":
		return PositionDefender, nil
	case "MID", "3":
		return PositionMidfielder, nil
	case "FWD", "4":
		return PositionForward, nil
	default:
		return "", fmt.Errorf("unknown player position: %q", raw)
	}
}

// Record is one candidate in an optimization run. Price is expressed in
// tenths of a million (FPL now_cost units).
type Record struct {
	ID                      string
	Name                    string
	Team                    string
	Position                Position
	Price                   int64
	RawPredictedPoints      float64
	FixtureFactor           float64
	FixtureAvgDifficulty    *float64
	AdjustedPredictedPoints float64
}

// PriceMillions returns the price in millions.
func (r Record) PriceMillions() float64 {
	return float64(r.Price) / 10.0
}

// FixturePoints is the raw prediction scaled by the fixture factor.
// A zero factor means the record was never adjusted and counts as neutral.
func (r Record) FixturePoints() float64 {
	factor := r.FixtureFactor
	if factor == 0 {
		factor = 1.0
	}
	return r.RawPredictedPoints * factor
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(r.Team) == "" {
		return fmt.Errorf("player team is required: %s", r.ID)
	}
	if _, ok := AllPositions[r.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", r.Position)
	}
	if r.Price <= 0 {
		return fmt.Errorf("player price must be greater than zero: %s", r.ID)
	}
	if math.IsNaN(r.RawPredictedPoints) || math.IsInf(r.RawPredictedPoints, 0) {
		return fmt.Errorf("player predicted points must be finite: %s", r.ID)
	}
	if math.IsNaN(r.AdjustedPredictedPoints) || math.IsInf(r.AdjustedPredictedPoints, 0) {
		return fmt.Errorf("player adjusted points must be finite: %s", r.ID)
	}

	return nil
}
