package valuation

import (
	"fmt"
	"math"
	"strings"

	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/player"
)

const (
	NamePoints   = "points"
	NameValue    = "value"
	NameBalanced = "balanced"

	// PriceFloor keeps very cheap players from dominating the value ranking.
	PriceFloor = 4.0

	balancedPointsWeight = 0.7
	balancedValueWeight  = 0.3
	balancedValueScale   = 3.0
)

// ScoreFunc maps a fixture-adjusted player record to a ranking score.
type ScoreFunc func(player.Record) float64

// Strategy is a named scoring rule used to rank candidates.
type Strategy struct {
	Name        string
	Title       string
	Description string
	Score       ScoreFunc
}

func Points() Strategy {
	return Strategy{
		Name:        NamePoints,
		Title:       "Max Predicted Points",
		Description: "Optimized for highest predicted points",
		Score:       PointsScore,
	}
}

func Value() Strategy {
	return Strategy{
		Name:        NameValue,
		Title:       "Best Value",
		Description: "Optimized for points per million spent",
		Score:       ValueScore,
	}
}

func Balanced() Strategy {
	return Strategy{
		Name:        NameBalanced,
		Title:       "Balanced",
		Description: "Balanced approach combining points and value",
		Score:       BalancedScore,
	}
}

// Default returns the built-in strategies in generation order.
func Default() []Strategy {
	return []Strategy{Points(), Value(), Balanced()}
}

// Lookup finds a built-in strategy by name.
func Lookup(name string) (Strategy, error) {
	for _, s := range Default() {
		if s.Name == strings.ToLower(strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return Strategy{}, fmt.Errorf("unknown valuation strategy: %q", name)
}

func PointsScore(r player.Record) float64 {
	return r.FixturePoints()
}

func ValueScore(r player.Record) float64 {
	return r.FixturePoints() / math.Max(r.PriceMillions(), PriceFloor)
}

func BalancedScore(r player.Record) float64 {
	return balancedPointsWeight*r.FixturePoints() + balancedValueWeight*ValueScore(r)*balancedValueScale
}

// Apply returns a scored copy of pool. The input slice is never modified.
func Apply(strategy Strategy, pool []player.Record) []player.Record {
	out := make([]player.Record, len(pool))
	for i, r := range pool {
		scored := r
		if r.FixtureAvgDifficulty != nil {
			avg := *r.FixtureAvgDifficulty
			scored.FixtureAvgDifficulty = &avg
		}
		scored.AdjustedPredictedPoints = strategy.Score(r)
		out[i] = scored
	}
	return out
}
