package fantasy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/player"
)

type ranked struct {
	record player.Record
	index  int
}

// SelectSquad fills the formation greedily from scored candidates.
//
// Each position bucket is ranked by AdjustedPredictedPoints descending, then
// price ascending, then input order. Positions are scanned in formation order
// and a candidate is skipped when it no longer fits the remaining budget or
// its team is already at the per-team cap. There is no backtracking, so the
// result is a fast heuristic rather than a global optimum.
func SelectSquad(pool []player.Record, rules Rules) (Squad, error) {
	if err := validateSelection(pool, rules); err != nil {
		return Squad{}, err
	}

	buckets := make(map[player.Position][]ranked, len(rules.Formation))
	for i, r := range pool {
		if _, ok := rules.Formation.Quota(r.Position); !ok {
			continue
		}
		buckets[r.Position] = append(buckets[r.Position], ranked{record: r, index: i})
	}

	for _, q := range rules.Formation {
		if available := len(buckets[q.Position]); available < q.Min {
			return Squad{}, &PoolExhaustedError{Position: q.Position, Available: available, Required: q.Min}
		}
	}

	picks := make([]player.Record, 0, rules.Formation.SquadSize())
	teamCounter := make(map[string]int)
	remaining := rules.BudgetCap

	for _, q := range rules.Formation {
		bucket := buckets[q.Position]
		sortRanked(bucket)

		selected, skippedBudget, skippedTeam := 0, 0, 0
		for _, c := range bucket {
			if selected >= q.Max {
				break
			}
			if c.record.Price > remaining {
				skippedBudget++
				continue
			}
			if teamCounter[c.record.Team] >= rules.MaxPlayersPerTeam {
				skippedTeam++
				continue
			}
			picks = append(picks, c.record)
			teamCounter[c.record.Team]++
			remaining -= c.record.Price
			selected++
		}

		if selected < q.Min {
			return Squad{}, &BudgetInfeasibleError{
				Position:          q.Position,
				Selected:          selected,
				Required:          q.Min,
				RemainingBudget:   remaining,
				SkippedOverBudget: skippedBudget,
				SkippedTeamLimit:  skippedTeam,
			}
		}
	}

	if err := ValidatePicks(picks, rules); err != nil {
		return Squad{}, fmt.Errorf("selected squad violates rules: %w", err)
	}

	return Squad{
		Players: picks,
		Stats:   computeStats(picks, rules.BudgetCap, rules.Formation),
	}, nil
}

func sortRanked(bucket []ranked) {
	sort.SliceStable(bucket, func(i, j int) bool {
		a, b := bucket[i], bucket[j]
		if a.record.AdjustedPredictedPoints != b.record.AdjustedPredictedPoints {
			return a.record.AdjustedPredictedPoints > b.record.AdjustedPredictedPoints
		}
		if a.record.Price != b.record.Price {
			return a.record.Price < b.record.Price
		}
		return a.index < b.index
	})
}

func validateSelection(pool []player.Record, rules Rules) error {
	if err := rules.Validate(); err != nil {
		return invalidInput("%v", err)
	}

	seen := make(map[string]struct{}, len(pool))
	for i, r := range pool {
		if err := r.Validate(); err != nil {
			return invalidInput("candidate %d: %v", i, err)
		}
		id := strings.TrimSpace(r.ID)
		if _, dup := seen[id]; dup {
			return invalidInput("duplicate candidate id %s", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
