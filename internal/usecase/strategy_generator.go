package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/iter"

	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/fantasy"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/player"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/valuation"
)

// StrategySquad is a squad together with the strategy that produced it.
type StrategySquad struct {
	Name        string
	Title       string
	Description string
	Squad       fantasy.Squad
}

// StrategyFailure records why one strategy produced no squad.
type StrategyFailure struct {
	Name string
	Err  error
}

// PartialStrategyFailure lists every strategy that failed in a run where
// the caller may still have received squads from the others.
type PartialStrategyFailure struct {
	Failures []StrategyFailure
}

func (e *PartialStrategyFailure) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Name, f.Err))
	}
	return fmt.Sprintf("%d strategies failed: %s", len(e.Failures), strings.Join(parts, "; "))
}

func (e *PartialStrategyFailure) Unwrap() []error {
	out := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		out = append(out, f.Err)
	}
	return out
}

type GenerationResult struct {
	Squads   []StrategySquad
	Failures []StrategyFailure
	// Partial is non-nil when at least one strategy failed.
	Partial *PartialStrategyFailure
}

// StrategyGenerator runs the squad selector once per valuation strategy.
type StrategyGenerator struct {
	strategies []valuation.Strategy
}

func NewStrategyGenerator(strategies ...valuation.Strategy) *StrategyGenerator {
	if len(strategies) == 0 {
		strategies = valuation.Default()
	}
	return &StrategyGenerator{strategies: strategies}
}

func (g *StrategyGenerator) Strategies() []valuation.Strategy {
	return append([]valuation.Strategy(nil), g.strategies...)
}

type strategyOutcome struct {
	strategy valuation.Strategy
	squad    fantasy.Squad
	err      error
}

// Generate scores pool under every strategy and selects a squad for each.
// Strategies run concurrently on their own snapshots and results keep the
// configured strategy order. limit caps the number of successful squads
// returned; zero or negative means no cap.
//
// A strategy failure never aborts the others. An error is returned only when
// the input itself is invalid, which would fail every strategy alike.
func (g *StrategyGenerator) Generate(pool []player.Record, rules fantasy.Rules, limit int) (GenerationResult, error) {
	if err := rules.Validate(); err != nil {
		return GenerationResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	outcomes := iter.Map(g.strategies, func(strategy *valuation.Strategy) strategyOutcome {
		snapshot := valuation.Apply(*strategy, pool)
		squad, err := fantasy.SelectSquad(snapshot, rules)
		return strategyOutcome{strategy: *strategy, squad: squad, err: err}
	})

	var result GenerationResult
	for _, outcome := range outcomes {
		if outcome.err != nil {
			if errors.Is(outcome.err, fantasy.ErrInvalidInput) {
				return GenerationResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, outcome.err)
			}
			result.Failures = append(result.Failures, StrategyFailure{Name: outcome.strategy.Name, Err: outcome.err})
			continue
		}
		if limit > 0 && len(result.Squads) >= limit {
			continue
		}
		result.Squads = append(result.Squads, StrategySquad{
			Name:        outcome.strategy.Name,
			Title:       outcome.strategy.Title,
			Description: outcome.strategy.Description,
			Squad:       outcome.squad,
		})
	}

	if len(result.Failures) > 0 {
		result.Partial = &PartialStrategyFailure{Failures: result.Failures}
	}
	return result, nil
}
