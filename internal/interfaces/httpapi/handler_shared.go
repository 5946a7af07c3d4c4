package httpapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/fantasy"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/fixture"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/player"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/platform/logging"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/usecase"
)

const maxRequestBodyBytes = 4 << 20

type Handler struct {
	suggestionService *usecase.SuggestionService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(suggestionService *usecase.SuggestionService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		suggestionService: suggestionService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type squadTuningRequest struct {
	FixtureWindow int      `json:"fixture_window" validate:"gte=0,lte=38"`
	FixtureWeight *float64 `json:"fixture_weight,omitempty" validate:"omitempty,gte=0,lte=1"`
	TeamLimit     int      `json:"team_limit" validate:"gte=0,lte=15"`
	Formation     string   `json:"formation" validate:"omitempty,max=64"`
	Limit         int      `json:"limit" validate:"gte=0,lte=3"`
}

type suggestRequest struct {
	squadTuningRequest
	Budget *decimal.Decimal `json:"budget,omitempty"`
}

type optimizeRequest struct {
	squadTuningRequest
	Budget    *decimal.Decimal       `json:"budget,omitempty"`
	Players   []inlinePlayerRequest  `json:"players" validate:"required,min=1,max=2000,dive"`
	Events    []inlineEventRequest   `json:"events" validate:"omitempty,max=64,dive"`
	Fixtures  []inlineFixtureRequest `json:"fixtures" validate:"omitempty,max=1000,dive"`
	TeamNames map[string]string      `json:"team_names,omitempty"`
}

type inlinePlayerRequest struct {
	ID              string          `json:"id" validate:"required,max=64"`
	Name            string          `json:"name" validate:"max=128"`
	Team            string          `json:"team" validate:"required,max=64"`
	Position        string          `json:"position" validate:"required"`
	Price           decimal.Decimal `json:"price"`
	PredictedPoints float64         `json:"predicted_points"`
}

type inlineEventRequest struct {
	ID        int    `json:"id" validate:"gt=0"`
	Name      string `json:"name"`
	IsCurrent bool   `json:"is_current"`
	IsNext    bool   `json:"is_next"`
	Finished  bool   `json:"finished"`
}

type inlineFixtureRequest struct {
	ID             string `json:"id"`
	Gameweek       int    `json:"gameweek" validate:"gte=0"`
	HomeTeam       string `json:"home_team" validate:"required"`
	AwayTeam       string `json:"away_team" validate:"required"`
	HomeDifficulty int    `json:"home_difficulty" validate:"gte=1,lte=5"`
	AwayDifficulty int    `json:"away_difficulty" validate:"gte=1,lte=5"`
	Finished       bool   `json:"finished"`
}

type sweepRequest struct {
	squadTuningRequest
	Budgets []decimal.Decimal `json:"budgets" validate:"required,min=1,max=32"`
}

type difficultyRequest struct {
	Window int      `validate:"gte=0,lte=38"`
	Weight *float64 `validate:"omitempty,gte=0,lte=1"`
}

func (r squadTuningRequest) toInput(budget int64) (usecase.SuggestInput, error) {
	input := usecase.SuggestInput{
		Budget:        budget,
		FixtureWindow: r.FixtureWindow,
		FixtureWeight: r.FixtureWeight,
		TeamLimit:     r.TeamLimit,
		Limit:         r.Limit,
	}
	if strings.TrimSpace(r.Formation) != "" {
		formation, err := fantasy.ParseFormation(r.Formation)
		if err != nil {
			return usecase.SuggestInput{}, fmt.Errorf("%w: %w", usecase.ErrInvalidInput, err)
		}
		input.Formation = formation
	}
	return input, nil
}

// budgetToTenths returns zero for an absent budget so the service default applies.
func budgetToTenths(budget *decimal.Decimal) (int64, error) {
	if budget == nil {
		return 0, nil
	}
	tenths, err := fantasy.PriceFromMillions(*budget)
	if err != nil {
		return 0, fmt.Errorf("%w: budget: %w", usecase.ErrInvalidInput, err)
	}
	return tenths, nil
}

func (r optimizeRequest) toInput() (usecase.InlineInput, error) {
	budget, err := budgetToTenths(r.Budget)
	if err != nil {
		return usecase.InlineInput{}, err
	}
	tuning, err := r.squadTuningRequest.toInput(budget)
	if err != nil {
		return usecase.InlineInput{}, err
	}

	players := make([]player.Record, 0, len(r.Players))
	for i, p := range r.Players {
		position, err := player.ParsePosition(p.Position)
		if err != nil {
			return usecase.InlineInput{}, fmt.Errorf("%w: players[%d]: %w", usecase.ErrInvalidInput, i, err)
		}
		price, err := fantasy.PriceFromMillions(p.Price)
		if err != nil {
			return usecase.InlineInput{}, fmt.Errorf("%w: players[%d].price: %w", usecase.ErrInvalidInput, i, err)
		}
		players = append(players, player.Record{
			ID:                 strings.TrimSpace(p.ID),
			Name:               strings.TrimSpace(p.Name),
			Team:               strings.TrimSpace(p.Team),
			Position:           position,
			Price:              price,
			RawPredictedPoints: p.PredictedPoints,
		})
	}

	schedule := fixture.Schedule{
		Events:   make([]fixture.Event, 0, len(r.Events)),
		Fixtures: make([]fixture.Fixture, 0, len(r.Fixtures)),
	}
	for _, e := range r.Events {
		schedule.Events = append(schedule.Events, fixture.Event{
			ID:        e.ID,
			Name:      e.Name,
			IsCurrent: e.IsCurrent,
			IsNext:    e.IsNext,
			Finished:  e.Finished,
		})
	}
	for i, f := range r.Fixtures {
		id := strings.TrimSpace(f.ID)
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		schedule.Fixtures = append(schedule.Fixtures, fixture.Fixture{
			ID:             id,
			Gameweek:       f.Gameweek,
			HomeTeamID:     strings.TrimSpace(f.HomeTeam),
			AwayTeamID:     strings.TrimSpace(f.AwayTeam),
			HomeDifficulty: f.HomeDifficulty,
			AwayDifficulty: f.AwayDifficulty,
			Finished:       f.Finished,
		})
	}
	if len(r.TeamNames) > 0 {
		schedule.TeamNames = make(map[string]string, len(r.TeamNames))
		for id, name := range r.TeamNames {
			schedule.TeamNames[strings.TrimSpace(id)] = strings.TrimSpace(name)
		}
	}

	return usecase.InlineInput{
		SuggestInput: tuning,
		Players:      players,
		Schedule:     schedule,
	}, nil
}

func (r sweepRequest) budgetsInTenths() ([]int64, error) {
	out := make([]int64, 0, len(r.Budgets))
	for i, b := range r.Budgets {
		tenths, err := fantasy.PriceFromMillions(b)
		if err != nil {
			return nil, fmt.Errorf("%w: budgets[%d]: %w", usecase.ErrInvalidInput, i, err)
		}
		out = append(out, tenths)
	}
	return out, nil
}

func parseSuggestQuery(values url.Values) (suggestRequest, error) {
	var req suggestRequest
	var err error

	if raw := strings.TrimSpace(values.Get("budget")); raw != "" {
		budget, parseErr := decimal.NewFromString(raw)
		if parseErr != nil {
			return suggestRequest{}, fmt.Errorf("%w: invalid budget %q", usecase.ErrInvalidInput, raw)
		}
		req.Budget = &budget
	}
	if req.FixtureWindow, err = queryInt(values, "fixture_window"); err != nil {
		return suggestRequest{}, err
	}
	if req.FixtureWeight, err = queryFloat(values, "fixture_weight"); err != nil {
		return suggestRequest{}, err
	}
	if req.TeamLimit, err = queryInt(values, "team_limit"); err != nil {
		return suggestRequest{}, err
	}
	if req.Limit, err = queryInt(values, "limit"); err != nil {
		return suggestRequest{}, err
	}
	req.Formation = strings.TrimSpace(values.Get("formation"))

	return req, nil
}

func queryInt(values url.Values, key string) (int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0, nil
	}
	out, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", usecase.ErrInvalidInput, key, raw)
	}
	return out, nil
}

func queryFloat(values url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	out, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s %q", usecase.ErrInvalidInput, key, raw)
	}
	return &out, nil
}

type suggestionDTO struct {
	RunID          string               `json:"run_id"`
	GeneratedAt    time.Time            `json:"generated_at"`
	Budget         decimal.Decimal      `json:"budget"`
	FixtureWindow  int                  `json:"fixture_window"`
	FixtureWeight  float64              `json:"fixture_weight"`
	StartGameweek  int                  `json:"start_gameweek"`
	EndGameweek    int                  `json:"end_gameweek"`
	CandidateCount int                  `json:"candidate_count"`
	Squads         []strategySquadDTO   `json:"squads"`
	Failures       []strategyFailureDTO `json:"failures,omitempty"`
}

type strategySquadDTO struct {
	Strategy    string           `json:"strategy"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Players     []squadPlayerDTO `json:"players"`
	Stats       squadStatsDTO    `json:"stats"`
}

type squadPlayerDTO struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Team                 string          `json:"team"`
	Position             string          `json:"position"`
	Price                decimal.Decimal `json:"price"`
	PredictedPoints      float64         `json:"predicted_points"`
	FixtureFactor        float64         `json:"fixture_factor"`
	FixtureAvgDifficulty *float64        `json:"fixture_avg_difficulty,omitempty"`
	AdjustedPoints       float64         `json:"adjusted_points"`
}

type squadStatsDTO struct {
	TotalCost               decimal.Decimal `json:"total_cost"`
	RemainingBudget         decimal.Decimal `json:"remaining_budget"`
	TotalPredictedPoints    float64         `json:"total_predicted_points"`
	TotalRawPredictedPoints float64         `json:"total_raw_predicted_points"`
	AveragePredictedPoints  float64         `json:"average_predicted_points"`
	ValueForMoney           float64         `json:"value_for_money"`
	PlayersCount            int             `json:"players_count"`
	Formation               map[string]int  `json:"formation"`
	FormationLabel          string          `json:"formation_label"`
}

type strategyFailureDTO struct {
	Strategy string `json:"strategy"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
}

type sweepDTO struct {
	RunID         string          `json:"run_id"`
	StartGameweek int             `json:"start_gameweek"`
	EndGameweek   int             `json:"end_gameweek"`
	Entries       []sweepEntryDTO `json:"entries"`
}

type sweepEntryDTO struct {
	Budget   decimal.Decimal      `json:"budget"`
	Squads   []strategySquadDTO   `json:"squads"`
	Failures []strategyFailureDTO `json:"failures,omitempty"`
	Error    *googleErrorItem     `json:"error,omitempty"`
}

type difficultyDTO struct {
	StartGameweek int             `json:"start_gameweek"`
	EndGameweek   int             `json:"end_gameweek"`
	FixtureWindow int             `json:"fixture_window"`
	FixtureWeight float64         `json:"fixture_weight"`
	Teams         []teamFactorDTO `json:"teams"`
}

type teamFactorDTO struct {
	Team              string  `json:"team"`
	AverageDifficulty float64 `json:"average_difficulty"`
	Factor            float64 `json:"factor"`
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func suggestionToDTO(ctx context.Context, result usecase.SuggestionResult) suggestionDTO {
	return suggestionDTO{
		RunID:          result.RunID,
		GeneratedAt:    result.GeneratedAt,
		Budget:         fantasy.PriceToMillions(result.Budget),
		FixtureWindow:  result.FixtureWindow,
		FixtureWeight:  result.FixtureWeight,
		StartGameweek:  result.StartGameweek,
		EndGameweek:    result.EndGameweek,
		CandidateCount: result.CandidateCount,
		Squads:         squadsToDTO(result.Squads),
		Failures:       failuresToDTO(ctx, result.Failures),
	}
}

func squadsToDTO(squads []usecase.StrategySquad) []strategySquadDTO {
	out := make([]strategySquadDTO, 0, len(squads))
	for _, s := range squads {
		players := make([]squadPlayerDTO, 0, len(s.Squad.Players))
		for _, p := range s.Squad.Players {
			players = append(players, squadPlayerDTO{
				ID:                   p.ID,
				Name:                 p.Name,
				Team:                 p.Team,
				Position:             string(p.Position),
				Price:                fantasy.PriceToMillions(p.Price),
				PredictedPoints:      round2(p.RawPredictedPoints),
				FixtureFactor:        p.FixtureFactor,
				FixtureAvgDifficulty: p.FixtureAvgDifficulty,
				AdjustedPoints:       round2(p.AdjustedPredictedPoints),
			})
		}

		stats := s.Squad.Stats
		formation := make(map[string]int, len(stats.Formation))
		for pos, count := range stats.Formation {
			formation[string(pos)] = count
		}

		out = append(out, strategySquadDTO{
			Strategy:    s.Name,
			Title:       s.Title,
			Description: s.Description,
			Players:     players,
			Stats: squadStatsDTO{
				TotalCost:               fantasy.PriceToMillions(stats.TotalCost),
				RemainingBudget:         fantasy.PriceToMillions(stats.RemainingBudget),
				TotalPredictedPoints:    round2(stats.TotalPredictedPoints),
				TotalRawPredictedPoints: round2(stats.TotalRawPredictedPoints),
				AveragePredictedPoints:  round2(stats.AveragePredictedPoints),
				ValueForMoney:           round2(stats.ValueForMoney),
				PlayersCount:            stats.PlayersCount,
				Formation:               formation,
				FormationLabel:          stats.FormationLabel,
			},
		})
	}
	return out
}

func failuresToDTO(ctx context.Context, failures []usecase.StrategyFailure) []strategyFailureDTO {
	if len(failures) == 0 {
		return nil
	}
	out := make([]strategyFailureDTO, 0, len(failures))
	for _, f := range failures {
		out = append(out, strategyFailureDTO{
			Strategy: f.Name,
			Reason:   mapError(ctx, f.Err).Reason,
			Message:  f.Err.Error(),
		})
	}
	return out
}

func sweepToDTO(ctx context.Context, result usecase.SweepResult) sweepDTO {
	entries := make([]sweepEntryDTO, 0, len(result.Entries))
	for _, e := range result.Entries {
		entry := sweepEntryDTO{
			Budget:   fantasy.PriceToMillions(e.Budget),
			Squads:   squadsToDTO(e.Squads),
			Failures: failuresToDTO(ctx, e.Failures),
		}
		if e.Err != nil {
			entry.Error = &googleErrorItem{
				Domain:  errorDomain,
				Reason:  mapError(ctx, e.Err).Reason,
				Message: e.Err.Error(),
			}
		}
		entries = append(entries, entry)
	}
	return sweepDTO{
		RunID:         result.RunID,
		StartGameweek: result.StartGameweek,
		EndGameweek:   result.EndGameweek,
		Entries:       entries,
	}
}

func difficultyToDTO(report usecase.DifficultyReport) difficultyDTO {
	teams := make([]teamFactorDTO, 0, len(report.Teams))
	for _, t := range report.Teams {
		teams = append(teams, teamFactorDTO{
			Team:              t.Team,
			AverageDifficulty: round2(t.AverageDifficulty),
			Factor:            round2(t.Factor),
		})
	}
	return difficultyDTO{
		StartGameweek: report.StartGameweek,
		EndGameweek:   report.EndGameweek,
		FixtureWindow: report.FixtureWindow,
		FixtureWeight: report.FixtureWeight,
		Teams:         teams,
	}
}
