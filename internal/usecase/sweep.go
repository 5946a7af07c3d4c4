package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
)

const maxSweepBudgets = 32

type SweepEntry struct {
	Budget   int64
	Squads   []StrategySquad
	Failures []StrategyFailure
	// Err is set when no strategy produced a squad at this budget.
	Err error
}

type SweepResult struct {
	RunID         string
	StartGameweek int
	EndGameweek   int
	Entries       []SweepEntry
}

// SweepBudgets runs the generator once per budget over the same candidate
// pool. Entries are sorted by budget ascending; an infeasible budget is
// reported on its entry instead of failing the sweep.
func (s *SuggestionService) SweepBudgets(ctx context.Context, input SuggestInput, budgets []int64) (SweepResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SuggestionService.SweepBudgets")
	defer span.End()

	budgets = uniqueBudgets(budgets)
	if len(budgets) == 0 {
		return SweepResult{}, fmt.Errorf("%w: at least one budget is required", ErrInvalidInput)
	}
	if len(budgets) > maxSweepBudgets {
		return SweepResult{}, fmt.Errorf("%w: at most %d budgets per sweep", ErrInvalidInput, maxSweepBudgets)
	}
	if budgets[0] <= 0 {
		return SweepResult{}, fmt.Errorf("%w: budgets must be greater than zero", ErrInvalidInput)
	}

	input.Budget = budgets[0]
	plan, err := s.plan(input)
	if err != nil {
		return SweepResult{}, err
	}

	predictions, schedule, err := s.loadSources(ctx)
	if err != nil {
		return SweepResult{}, err
	}
	valid, _ := splitValid(predictions)

	difficulties := plan.adjuster.TeamDifficulties(schedule)
	pool := buildCandidatePool(valid, difficulties, plan.adjuster)
	start, end := plan.adjuster.Range(schedule)

	workerCount := s.defaults.SweepWorkers
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > len(budgets) {
		workerCount = len(budgets)
	}

	workers, err := ants.NewPool(workerCount)
	if err != nil {
		return SweepResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	results := make(chan SweepEntry, len(budgets))
	var wg sync.WaitGroup
	for _, budget := range budgets {
		budget := budget
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()

			entry := SweepEntry{Budget: budget}
			if err := ctx.Err(); err != nil {
				entry.Err = err
				results <- entry
				return
			}

			rules := plan.rules
			rules.BudgetCap = budget
			generated, err := s.generator.Generate(pool, rules, plan.limit)
			switch {
			case err != nil:
				entry.Err = err
			case len(generated.Squads) == 0 && generated.Partial != nil:
				entry.Err = generated.Partial
			}
			entry.Squads = generated.Squads
			entry.Failures = generated.Failures
			results <- entry
		}); err != nil {
			wg.Done()
			return SweepResult{}, fmt.Errorf("submit sweep task to worker pool: %w", err)
		}
	}

	wg.Wait()
	close(results)

	out := SweepResult{StartGameweek: start, EndGameweek: end}
	for entry := range results {
		out.Entries = append(out.Entries, entry)
	}
	sort.SliceStable(out.Entries, func(i, j int) bool {
		return out.Entries[i].Budget < out.Entries[j].Budget
	})

	if err := ctx.Err(); err != nil {
		return SweepResult{}, err
	}

	runID, err := s.idGen.NewID()
	if err != nil {
		return SweepResult{}, fmt.Errorf("generate run id: %w", err)
	}
	out.RunID = runID

	s.logger.InfoContext(ctx, "budget sweep completed",
		"run_id", runID,
		"budgets", len(budgets),
		"workers", workerCount,
	)
	return out, nil
}

func uniqueBudgets(budgets []int64) []int64 {
	seen := make(map[int64]struct{}, len(budgets))
	out := make([]int64, 0, len(budgets))
	for _, b := range budgets {
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
