package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/fantasy"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/fixture"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/player"
	fixturemock "github.com/riskibarqy/fpl-squad-optimizer/internal/mocks/domain/fixture"
	playermock "github.com/riskibarqy/fpl-squad-optimizer/internal/mocks/domain/player"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/platform/logging"
)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

func miniFormation() fantasy.Formation {
	return fantasy.Formation{
		{Position: player.PositionGoalkeeper, Min: 1, Max: 1},
		{Position: player.PositionDefender, Min: 1, Max: 1},
	}
}

func sampleSchedule() fixture.Schedule {
	return fixture.Schedule{
		Events: []fixture.Event{{ID: 9, Finished: true}, {ID: 10, IsCurrent: true}},
		Fixtures: []fixture.Fixture{
			{ID: "f1", Gameweek: 10, HomeTeamID: "1", AwayTeamID: "3", HomeDifficulty: 1, AwayDifficulty: 5},
			{ID: "f2", Gameweek: 30, HomeTeamID: "2", AwayTeamID: "4", HomeDifficulty: 1, AwayDifficulty: 1},
		},
		TeamNames: map[string]string{"1": "Arsenal", "2": "Brentford", "3": "Chelsea", "4": "Everton"},
	}
}

func newTestSuggestionService(t *testing.T) (*SuggestionService, *playermock.PredictionRepository, *fixturemock.ScheduleRepository) {
	t.Helper()

	predictionRepo := playermock.NewPredictionRepository(t)
	scheduleRepo := fixturemock.NewScheduleRepository(t)
	defaults := DefaultOptimizerDefaults()
	defaults.Formation = miniFormation()

	service := NewSuggestionService(
		predictionRepo,
		scheduleRepo,
		NewStrategyGenerator(),
		defaults,
		staticIDGenerator{id: "run-1"},
		logging.NewNop(),
	)
	service.now = func() time.Time { return time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC) }
	return service, predictionRepo, scheduleRepo
}

func TestSuggestionService_SuggestSquads_AppliesFixtureFactors(t *testing.T) {
	t.Parallel()

	service, predictionRepo, scheduleRepo := newTestSuggestionService(t)
	predictionRepo.On("ListPredictions", mock.Anything).Return(roomyPool(), nil).Once()
	scheduleRepo.On("GetSchedule", mock.Anything).Return(sampleSchedule(), nil).Once()

	got, err := service.SuggestSquads(context.Background(), SuggestInput{Budget: 1000})
	if err != nil {
		t.Fatalf("suggest squads: %v", err)
	}

	if got.RunID != "run-1" {
		t.Fatalf("unexpected run id: %s", got.RunID)
	}
	if got.StartGameweek != 10 || got.EndGameweek != 14 {
		t.Fatalf("unexpected window: %d-%d", got.StartGameweek, got.EndGameweek)
	}
	if got.CandidateCount != 4 || len(got.Squads) != 3 {
		t.Fatalf("unexpected counts: candidates=%d squads=%d", got.CandidateCount, len(got.Squads))
	}

	points := got.Squads[0].Squad
	if points.Players[0].ID != "g1" || points.Players[0].FixtureFactor != 1.2 {
		t.Fatalf("expected boosted g1 first, got %+v", points.Players[0])
	}
	if points.Players[1].ID != "d1" || points.Players[1].FixtureFactor != 0.8 {
		t.Fatalf("expected dampened d1, got %+v", points.Players[1])
	}
	if avg := points.Players[1].FixtureAvgDifficulty; avg == nil || *avg != 5 {
		t.Fatalf("expected avg difficulty 5 for d1, got %v", avg)
	}
	if diff := points.Stats.TotalPredictedPoints - 10.04; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("unexpected total points: %v", points.Stats.TotalPredictedPoints)
	}
	if diff := points.Stats.TotalRawPredictedPoints - 10.3; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("unexpected raw total: %v", points.Stats.TotalRawPredictedPoints)
	}
}

func TestSuggestionService_SuggestSquads_ScheduleUnavailableUsesNeutralFactors(t *testing.T) {
	t.Parallel()

	service, predictionRepo, scheduleRepo := newTestSuggestionService(t)
	predictionRepo.On("ListPredictions", mock.Anything).Return(roomyPool(), nil).Once()
	scheduleRepo.On("GetSchedule", mock.Anything).
		Return(fixture.Schedule{}, errors.Join(ErrDependencyUnavailable, errors.New("circuit open"))).
		Once()

	got, err := service.SuggestSquads(context.Background(), SuggestInput{})
	if err != nil {
		t.Fatalf("suggest squads: %v", err)
	}
	for _, p := range got.Squads[0].Squad.Players {
		if p.FixtureFactor != 1.0 || p.FixtureAvgDifficulty != nil {
			t.Fatalf("expected neutral factor, got %+v", p)
		}
	}
	if got.StartGameweek != 1 {
		t.Fatalf("expected default start gameweek, got %d", got.StartGameweek)
	}
}

func TestSuggestionService_SuggestSquads_SkipsInvalidPredictions(t *testing.T) {
	t.Parallel()

	service, predictionRepo, scheduleRepo := newTestSuggestionService(t)
	pool := append(roomyPool(), prediction("broken", "", player.PositionForward, 0, 2))
	predictionRepo.On("ListPredictions", mock.Anything).Return(pool, nil).Once()
	scheduleRepo.On("GetSchedule", mock.Anything).Return(sampleSchedule(), nil).Once()

	got, err := service.SuggestSquads(context.Background(), SuggestInput{})
	if err != nil {
		t.Fatalf("suggest squads: %v", err)
	}
	if got.CandidateCount != 4 {
		t.Fatalf("expected invalid record to be skipped, got %d candidates", got.CandidateCount)
	}
}

func TestSuggestionService_SuggestSquads_RepositoryErrors(t *testing.T) {
	t.Parallel()

	t.Run("prediction failure", func(t *testing.T) {
		service, predictionRepo, _ := newTestSuggestionService(t)
		boom := errors.New("db down")
		predictionRepo.On("ListPredictions", mock.Anything).Return(nil, boom).Once()

		_, err := service.SuggestSquads(context.Background(), SuggestInput{})
		if !errors.Is(err, boom) {
			t.Fatalf("expected wrapped repository error, got %v", err)
		}
	})

	t.Run("no predictions", func(t *testing.T) {
		service, predictionRepo, _ := newTestSuggestionService(t)
		predictionRepo.On("ListPredictions", mock.Anything).Return([]player.Record{}, nil).Once()

		_, err := service.SuggestSquads(context.Background(), SuggestInput{})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("schedule failure", func(t *testing.T) {
		service, predictionRepo, scheduleRepo := newTestSuggestionService(t)
		boom := errors.New("bad row")
		predictionRepo.On("ListPredictions", mock.Anything).Return(roomyPool(), nil).Once()
		scheduleRepo.On("GetSchedule", mock.Anything).Return(fixture.Schedule{}, boom).Once()

		_, err := service.SuggestSquads(context.Background(), SuggestInput{})
		if !errors.Is(err, boom) {
			t.Fatalf("expected wrapped schedule error, got %v", err)
		}
	})
}

func TestSuggestionService_SuggestSquads_AllStrategiesFail(t *testing.T) {
	t.Parallel()

	service, predictionRepo, scheduleRepo := newTestSuggestionService(t)
	pool := []player.Record{prediction("d1", "Chelsea", player.PositionDefender, 50, 4)}
	predictionRepo.On("ListPredictions", mock.Anything).Return(pool, nil).Once()
	scheduleRepo.On("GetSchedule", mock.Anything).Return(sampleSchedule(), nil).Once()

	_, err := service.SuggestSquads(context.Background(), SuggestInput{})
	if !errors.Is(err, fantasy.ErrPoolExhausted) {
		t.Fatalf("expected ErrPoolExhausted, got %v", err)
	}
	var partial *PartialStrategyFailure
	if !errors.As(err, &partial) || len(partial.Failures) != 3 {
		t.Fatalf("expected partial failure for every strategy, got %v", err)
	}
}

func TestSuggestionService_SuggestSquads_InvalidInput(t *testing.T) {
	t.Parallel()

	negativeWindow := SuggestInput{FixtureWindow: -1}
	negativeBudget := SuggestInput{Budget: -10}
	negativeLimit := SuggestInput{Limit: -1}
	badFormation := SuggestInput{Formation: fantasy.Formation{{Position: player.PositionDefender, Min: 3, Max: 1}}}

	for name, input := range map[string]SuggestInput{
		"window":    negativeWindow,
		"budget":    negativeBudget,
		"limit":     negativeLimit,
		"formation": badFormation,
	} {
		input := input
		t.Run(name, func(t *testing.T) {
			service, _, _ := newTestSuggestionService(t)
			_, err := service.SuggestSquads(context.Background(), input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestSuggestionService_OptimizeInline(t *testing.T) {
	t.Parallel()

	service, _, _ := newTestSuggestionService(t)

	got, err := service.OptimizeInline(context.Background(), InlineInput{
		SuggestInput: SuggestInput{Budget: 130, Limit: 1},
		Players:      splitDecisionPool(),
	})
	if err != nil {
		t.Fatalf("optimize inline: %v", err)
	}
	if len(got.Squads) != 1 || got.Squads[0].Name != "value" {
		t.Fatalf("expected only value squad, got %+v", got.Squads)
	}
	if len(got.Failures) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(got.Failures))
	}

	bad := splitDecisionPool()
	bad[0].Price = 0
	_, err = service.OptimizeInline(context.Background(), InlineInput{Players: bad})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for invalid player, got %v", err)
	}

	_, err = service.OptimizeInline(context.Background(), InlineInput{
		Players:  splitDecisionPool(),
		Schedule: fixture.Schedule{Fixtures: []fixture.Fixture{{Gameweek: 1, HomeTeamID: "1", AwayTeamID: "2", HomeDifficulty: 9, AwayDifficulty: 2}}},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for invalid fixture, got %v", err)
	}

	_, err = service.OptimizeInline(context.Background(), InlineInput{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty players, got %v", err)
	}
}

func TestSuggestionService_TeamDifficulties(t *testing.T) {
	t.Parallel()

	service, _, scheduleRepo := newTestSuggestionService(t)
	scheduleRepo.On("GetSchedule", mock.Anything).Return(sampleSchedule(), nil).Once()

	weight := 0.25
	got, err := service.TeamDifficulties(context.Background(), 3, &weight)
	if err != nil {
		t.Fatalf("team difficulties: %v", err)
	}
	if got.StartGameweek != 10 || got.EndGameweek != 12 {
		t.Fatalf("unexpected window: %d-%d", got.StartGameweek, got.EndGameweek)
	}
	if len(got.Teams) != 2 {
		t.Fatalf("expected 2 teams, got %+v", got.Teams)
	}
	if got.Teams[0].Team != "Arsenal" || got.Teams[0].Factor != 1.2 {
		t.Fatalf("unexpected first row: %+v", got.Teams[0])
	}
	if got.Teams[1].Team != "Chelsea" || got.Teams[1].Factor != 0.8 {
		t.Fatalf("unexpected second row: %+v", got.Teams[1])
	}

	if _, err := service.TeamDifficulties(context.Background(), -2, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
