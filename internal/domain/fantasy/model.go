package fantasy

import (
	"strconv"
	"strings"

	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/player"
)

// Squad is one selected lineup with its summary statistics.
// Players are listed in selection order: formation order, then rank.
type Squad struct {
	Players []player.Record
	Stats   SquadStats
}

// SquadStats summarises a squad. Money fields are in tenths of a million.
type SquadStats struct {
	TotalCost               int64
	RemainingBudget         int64
	TotalPredictedPoints    float64
	TotalRawPredictedPoints float64
	AveragePredictedPoints  float64
	ValueForMoney           float64
	PlayersCount            int
	Formation               map[player.Position]int
	FormationLabel          string
}

func computeStats(picks []player.Record, budget int64, formation Formation) SquadStats {
	stats := SquadStats{
		PlayersCount: len(picks),
		Formation:    make(map[player.Position]int, len(formation)),
	}
	for _, q := range formation {
		stats.Formation[q.Position] = 0
	}
	for _, p := range picks {
		stats.TotalCost += p.Price
		stats.TotalPredictedPoints += p.AdjustedPredictedPoints
		stats.TotalRawPredictedPoints += p.RawPredictedPoints
		stats.Formation[p.Position]++
	}
	stats.RemainingBudget = budget - stats.TotalCost
	if len(picks) > 0 {
		stats.AveragePredictedPoints = stats.TotalPredictedPoints / float64(len(picks))
	}
	if stats.TotalCost > 0 {
		stats.ValueForMoney = stats.TotalPredictedPoints / (float64(stats.TotalCost) / 10.0)
	}
	stats.FormationLabel = formationLabel(stats.Formation, formation)
	return stats
}

// formationLabel renders outfield counts as "D-M-F".
func formationLabel(counts map[player.Position]int, formation Formation) string {
	parts := make([]string, 0, len(formation))
	for _, q := range formation {
		if q.Position == player.PositionGoalkeeper {
			continue
		}
		parts = append(parts, strconv.Itoa(counts[q.Position]))
	}
	return strings.Join(parts, "-")
}
