package usecase

import (
	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/fixture"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/player"
)

// buildCandidatePool attaches fixture factors to raw predictions. The
// returned records carry fixture points as their neutral score so they can
// be ranked before any valuation strategy is applied.
func buildCandidatePool(predictions []player.Record, difficulties fixture.Difficulties, adjuster *fixture.Adjuster) []player.Record {
	out := make([]player.Record, 0, len(predictions))
	for _, p := range predictions {
		enriched := p
		enriched.FixtureAvgDifficulty = nil

		avg, ok := difficulties[p.Team]
		if ok {
			value := avg
			enriched.FixtureAvgDifficulty = &value
			enriched.FixtureFactor = adjuster.Factor(avg)
		} else {
			enriched.FixtureFactor = 1.0
		}
		enriched.AdjustedPredictedPoints = enriched.FixturePoints()
		out = append(out, enriched)
	}
	return out
}

// splitValid separates records the selector would reject from usable ones.
func splitValid(records []player.Record) ([]player.Record, []player.Record) {
	valid := make([]player.Record, 0, len(records))
	var rejected []player.Record
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if err := r.Validate(); err != nil {
			rejected = append(rejected, r)
			continue
		}
		if _, dup := seen[r.ID]; dup {
			rejected = append(rejected, r)
			continue
		}
		seen[r.ID] = struct{}{}
		valid = append(valid, r)
	}
	return valid, rejected
}
