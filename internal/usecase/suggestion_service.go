package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/fantasy"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/fixture"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/player"
	idgen "github.com/riskibarqy/fpl-squad-optimizer/internal/platform/id"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/platform/logging"
)

// OptimizerDefaults are applied to any field a request leaves unset.
type OptimizerDefaults struct {
	Budget        int64
	FixtureWindow int
	FixtureWeight float64
	TeamLimit     int
	Formation     fantasy.Formation
	SweepWorkers  int
}

func DefaultOptimizerDefaults() OptimizerDefaults {
	return OptimizerDefaults{
		Budget:        fantasy.DefaultBudgetCap,
		FixtureWindow: fixture.DefaultWindow,
		FixtureWeight: fixture.DefaultWeight,
		TeamLimit:     fantasy.DefaultMaxPlayersPerTeam,
		Formation:     fantasy.DefaultFormation(),
		SweepWorkers:  4,
	}
}

// SuggestInput tunes one optimization run. Zero values fall back to defaults.
type SuggestInput struct {
	// Budget is in tenths of a million.
	Budget        int64
	FixtureWindow int
	FixtureWeight *float64
	TeamLimit     int
	Formation     fantasy.Formation
	Limit         int
}

// InlineInput carries caller-supplied data instead of repository data.
type InlineInput struct {
	SuggestInput
	Players  []player.Record
	Schedule fixture.Schedule
}

type SuggestionResult struct {
	RunID          string
	GeneratedAt    time.Time
	Budget         int64
	FixtureWindow  int
	FixtureWeight  float64
	StartGameweek  int
	EndGameweek    int
	CandidateCount int
	Squads         []StrategySquad
	Failures       []StrategyFailure
}

type DifficultyReport struct {
	StartGameweek int
	EndGameweek   int
	FixtureWindow int
	FixtureWeight float64
	Teams         []fixture.TeamFactor
}

type SuggestionService struct {
	predictionRepo player.PredictionRepository
	scheduleRepo   fixture.ScheduleRepository
	generator      *StrategyGenerator
	defaults       OptimizerDefaults
	idGen          idgen.Generator
	logger         *logging.Logger
	now            func() time.Time
}

func NewSuggestionService(
	predictionRepo player.PredictionRepository,
	scheduleRepo fixture.ScheduleRepository,
	generator *StrategyGenerator,
	defaults OptimizerDefaults,
	idGen idgen.Generator,
	logger *logging.Logger,
) *SuggestionService {
	if logger == nil {
		logger = logging.Default()
	}
	if generator == nil {
		generator = NewStrategyGenerator()
	}
	if idGen == nil {
		idGen = idgen.NewUUIDGenerator()
	}

	return &SuggestionService{
		predictionRepo: predictionRepo,
		scheduleRepo:   scheduleRepo,
		generator:      generator,
		defaults:       defaults,
		idGen:          idGen,
		logger:         logger,
		now:            time.Now,
	}
}

type runPlan struct {
	rules    fantasy.Rules
	adjuster *fixture.Adjuster
	limit    int
}

func (s *SuggestionService) plan(input SuggestInput) (runPlan, error) {
	budget := input.Budget
	if budget == 0 {
		budget = s.defaults.Budget
	}
	if budget <= 0 {
		return runPlan{}, fmt.Errorf("%w: budget must be greater than zero", ErrInvalidInput)
	}

	window := input.FixtureWindow
	if window == 0 {
		window = s.defaults.FixtureWindow
	}
	weight := s.defaults.FixtureWeight
	if input.FixtureWeight != nil {
		weight = *input.FixtureWeight
	}
	adjuster, err := fixture.NewAdjuster(window, weight)
	if err != nil {
		return runPlan{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	teamLimit := input.TeamLimit
	if teamLimit == 0 {
		teamLimit = s.defaults.TeamLimit
	}
	formation := input.Formation
	if len(formation) == 0 {
		formation = s.defaults.Formation
	}
	if input.Limit < 0 {
		return runPlan{}, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}

	rules := fantasy.Rules{
		Formation:         formation,
		BudgetCap:         budget,
		MaxPlayersPerTeam: teamLimit,
	}
	if err := rules.Validate(); err != nil {
		return runPlan{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return runPlan{rules: rules, adjuster: adjuster, limit: input.Limit}, nil
}

// SuggestSquads builds squads from the configured prediction and schedule sources.
func (s *SuggestionService) SuggestSquads(ctx context.Context, input SuggestInput) (SuggestionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SuggestionService.SuggestSquads")
	defer span.End()

	plan, err := s.plan(input)
	if err != nil {
		return SuggestionResult{}, err
	}

	predictions, schedule, err := s.loadSources(ctx)
	if err != nil {
		return SuggestionResult{}, err
	}

	valid, rejected := splitValid(predictions)
	if len(rejected) > 0 {
		s.logger.WarnContext(ctx, "skipping invalid prediction records", "rejected", len(rejected), "accepted", len(valid))
	}

	return s.run(ctx, plan, valid, schedule)
}

// OptimizeInline runs the same pipeline on data supplied by the caller.
// Unlike SuggestSquads, invalid records are rejected rather than skipped.
func (s *SuggestionService) OptimizeInline(ctx context.Context, input InlineInput) (SuggestionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SuggestionService.OptimizeInline")
	defer span.End()

	if len(input.Players) == 0 {
		return SuggestionResult{}, fmt.Errorf("%w: players are required", ErrInvalidInput)
	}
	for _, fx := range input.Schedule.Fixtures {
		if err := fx.Validate(); err != nil {
			return SuggestionResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}

	plan, err := s.plan(input.SuggestInput)
	if err != nil {
		return SuggestionResult{}, err
	}

	return s.run(ctx, plan, input.Players, input.Schedule)
}

func (s *SuggestionService) run(ctx context.Context, plan runPlan, predictions []player.Record, schedule fixture.Schedule) (SuggestionResult, error) {
	if err := ctx.Err(); err != nil {
		return SuggestionResult{}, err
	}

	difficulties := plan.adjuster.TeamDifficulties(schedule)
	pool := buildCandidatePool(predictions, difficulties, plan.adjuster)
	start, end := plan.adjuster.Range(schedule)

	generated, err := s.generator.Generate(pool, plan.rules, plan.limit)
	if err != nil {
		return SuggestionResult{}, err
	}
	if len(generated.Squads) == 0 && generated.Partial != nil {
		return SuggestionResult{}, fmt.Errorf("no strategy produced a squad: %w", generated.Partial)
	}

	runID, err := s.idGen.NewID()
	if err != nil {
		return SuggestionResult{}, fmt.Errorf("generate run id: %w", err)
	}

	for _, failure := range generated.Failures {
		s.logger.InfoContext(ctx, "strategy produced no squad",
			"run_id", runID,
			"strategy", failure.Name,
			"error", failure.Err,
		)
	}
	s.logger.DebugContext(ctx, "squad suggestions generated",
		"run_id", runID,
		"candidates", len(pool),
		"teams_with_fixtures", len(difficulties),
		"squads", len(generated.Squads),
	)

	return SuggestionResult{
		RunID:          runID,
		GeneratedAt:    s.now().UTC(),
		Budget:         plan.rules.BudgetCap,
		FixtureWindow:  plan.adjuster.Window(),
		FixtureWeight:  plan.adjuster.Weight(),
		StartGameweek:  start,
		EndGameweek:    end,
		CandidateCount: len(pool),
		Squads:         generated.Squads,
		Failures:       generated.Failures,
	}, nil
}

// TeamDifficulties reports the upcoming fixture difficulty and factor per team.
func (s *SuggestionService) TeamDifficulties(ctx context.Context, window int, weight *float64) (DifficultyReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SuggestionService.TeamDifficulties")
	defer span.End()

	if window == 0 {
		window = s.defaults.FixtureWindow
	}
	w := s.defaults.FixtureWeight
	if weight != nil {
		w = *weight
	}
	adjuster, err := fixture.NewAdjuster(window, w)
	if err != nil {
		return DifficultyReport{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	schedule, err := s.scheduleRepo.GetSchedule(ctx)
	if err != nil {
		return DifficultyReport{}, fmt.Errorf("get schedule: %w", err)
	}

	start, end := adjuster.Range(schedule)
	return DifficultyReport{
		StartGameweek: start,
		EndGameweek:   end,
		FixtureWindow: window,
		FixtureWeight: w,
		Teams:         adjuster.TeamDifficulties(schedule).Table(w),
	}, nil
}

func (s *SuggestionService) loadSources(ctx context.Context) ([]player.Record, fixture.Schedule, error) {
	predictions, err := s.predictionRepo.ListPredictions(ctx)
	if err != nil {
		return nil, fixture.Schedule{}, fmt.Errorf("list predictions: %w", err)
	}
	if len(predictions) == 0 {
		return nil, fixture.Schedule{}, fmt.Errorf("%w: no player predictions available", ErrNotFound)
	}

	schedule, err := s.scheduleRepo.GetSchedule(ctx)
	if err != nil {
		if errors.Is(err, ErrDependencyUnavailable) {
			s.logger.WarnContext(ctx, "schedule unavailable, using neutral fixture factors", "error", err)
			return predictions, fixture.Schedule{}, nil
		}
		return nil, fixture.Schedule{}, fmt.Errorf("get schedule: %w", err)
	}

	return predictions, schedule, nil
}
