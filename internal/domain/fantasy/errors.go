package fantasy

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/player"
)

var (
	ErrInvalidInput     = errors.New("invalid optimizer input")
	ErrPoolExhausted    = errors.New("candidate pool exhausted")
	ErrBudgetInfeasible = errors.New("budget infeasible")
)

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// PoolExhaustedError reports a position whose candidate bucket is smaller
// than the formation minimum before any budget is spent.
type PoolExhaustedError struct {
	Position  player.Position
	Available int
	Required  int
}

func (e *PoolExhaustedError) Error() string {
	return fmt.Sprintf("not enough %s players available: have %d, need %d", e.Position, e.Available, e.Required)
}

func (e *PoolExhaustedError) Is(target error) bool {
	return target == ErrPoolExhausted
}

// BudgetInfeasibleError reports a position that could not reach its minimum
// once the scan had skipped unaffordable or team-capped candidates.
type BudgetInfeasibleError struct {
	Position          player.Position
	Selected          int
	Required          int
	RemainingBudget   int64
	SkippedOverBudget int
	SkippedTeamLimit  int
}

func (e *BudgetInfeasibleError) Error() string {
	return fmt.Sprintf(
		"cannot afford minimum %d %s players within budget: selected=%d remaining=%d skipped_over_budget=%d skipped_team_limit=%d",
		e.Required, e.Position, e.Selected, e.RemainingBudget, e.SkippedOverBudget, e.SkippedTeamLimit,
	)
}

func (e *BudgetInfeasibleError) Is(target error) bool {
	return target == ErrBudgetInfeasible
}
