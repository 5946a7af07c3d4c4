// Package mcptool exposes the squad optimizer as Model Context Protocol tools.
package mcptool

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shopspring/decimal"

	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/fantasy"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/platform/logging"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/usecase"
)

const (
	ToolSuggestSquads     = "suggest_squads"
	ToolFixtureDifficulty = "fixture_difficulty"
)

type SuggestSquadsArgs struct {
	Budget        float64  `json:"budget,omitempty" jsonschema:"Budget in millions (0 = service default, e.g. 100.0)"`
	FixtureWindow int      `json:"fixture_window,omitempty" jsonschema:"Upcoming gameweeks to average difficulty over (0 = default 5)"`
	FixtureWeight *float64 `json:"fixture_weight,omitempty" jsonschema:"Factor change per difficulty step (default 0.15)"`
	TeamLimit     int      `json:"team_limit,omitempty" jsonschema:"Max players from one club (0 = default 3)"`
	Formation     string   `json:"formation,omitempty" jsonschema:"Quotas like GKP:2-2,DEF:5-5,MID:5-5,FWD:3-3"`
	Limit         int      `json:"limit,omitempty" jsonschema:"Max squads to return (0 = all strategies)"`
}

type FixtureDifficultyArgs struct {
	Window int      `json:"window,omitempty" jsonschema:"Upcoming gameweeks to average over (0 = default 5)"`
	Weight *float64 `json:"weight,omitempty" jsonschema:"Factor change per difficulty step (default 0.15)"`
}

type SquadPick struct {
	Name           string  `json:"name"`
	Team           string  `json:"team"`
	Position       string  `json:"position"`
	Price          float64 `json:"price"`
	AdjustedPoints float64 `json:"adjusted_points"`
	FixtureFactor  float64 `json:"fixture_factor"`
}

type SquadSummary struct {
	Strategy        string      `json:"strategy"`
	Title           string      `json:"title"`
	TotalCost       float64     `json:"total_cost"`
	RemainingBudget float64     `json:"remaining_budget"`
	TotalPoints     float64     `json:"total_points"`
	Formation       string      `json:"formation"`
	Players         []SquadPick `json:"players"`
}

type SuggestSquadsResult struct {
	RunID         string            `json:"run_id"`
	Budget        float64           `json:"budget"`
	StartGameweek int               `json:"start_gameweek"`
	EndGameweek   int               `json:"end_gameweek"`
	Squads        []SquadSummary    `json:"squads"`
	Failures      map[string]string `json:"failures,omitempty"`
}

type TeamDifficulty struct {
	Team              string  `json:"team"`
	AverageDifficulty float64 `json:"average_difficulty"`
	Factor            float64 `json:"factor"`
}

type FixtureDifficultyResult struct {
	StartGameweek int              `json:"start_gameweek"`
	EndGameweek   int              `json:"end_gameweek"`
	Teams         []TeamDifficulty `json:"teams"`
}

type tools struct {
	service *usecase.SuggestionService
	logger  *logging.Logger
}

// NewServer registers the optimizer tools on a fresh MCP server.
func NewServer(service *usecase.SuggestionService, name, version string, logger *logging.Logger) *mcp.Server {
	if logger == nil {
		logger = logging.Default()
	}
	t := &tools{service: service, logger: logger.Named("mcp")}

	server := mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolSuggestSquads,
		Description: "Build one 15-player squad per valuation strategy (points, value, balanced) within budget, formation and per-club limits.",
	}, t.suggestSquads)
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolFixtureDifficulty,
		Description: "Average upcoming fixture difficulty and the resulting points multiplier for every club, easiest first.",
	}, t.fixtureDifficulty)

	return server
}

// NewHTTPHandler serves server over streamable HTTP.
func NewHTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

func (t *tools) suggestSquads(ctx context.Context, _ *mcp.CallToolRequest, args SuggestSquadsArgs) (*mcp.CallToolResult, any, error) {
	out, err := t.buildSuggestion(ctx, args)
	if err != nil {
		t.logger.WarnContext(ctx, "mcp suggest_squads failed", "error", err)
		return toolError(err), nil, nil
	}
	return toolJSON(out)
}

func (t *tools) buildSuggestion(ctx context.Context, args SuggestSquadsArgs) (SuggestSquadsResult, error) {
	input := usecase.SuggestInput{
		FixtureWindow: args.FixtureWindow,
		FixtureWeight: args.FixtureWeight,
		TeamLimit:     args.TeamLimit,
		Limit:         args.Limit,
	}
	if args.Budget != 0 {
		budget, err := fantasy.PriceFromMillions(decimal.NewFromFloat(args.Budget))
		if err != nil {
			return SuggestSquadsResult{}, fmt.Errorf("%w: budget: %w", usecase.ErrInvalidInput, err)
		}
		input.Budget = budget
	}
	if args.Formation != "" {
		formation, err := fantasy.ParseFormation(args.Formation)
		if err != nil {
			return SuggestSquadsResult{}, fmt.Errorf("%w: %w", usecase.ErrInvalidInput, err)
		}
		input.Formation = formation
	}

	result, err := t.service.SuggestSquads(ctx, input)
	if err != nil {
		return SuggestSquadsResult{}, err
	}

	out := SuggestSquadsResult{
		RunID:         result.RunID,
		Budget:        millions(result.Budget),
		StartGameweek: result.StartGameweek,
		EndGameweek:   result.EndGameweek,
		Squads:        make([]SquadSummary, 0, len(result.Squads)),
	}
	for _, s := range result.Squads {
		picks := make([]SquadPick, 0, len(s.Squad.Players))
		for _, p := range s.Squad.Players {
			picks = append(picks, SquadPick{
				Name:           p.Name,
				Team:           p.Team,
				Position:       string(p.Position),
				Price:          millions(p.Price),
				AdjustedPoints: round2(p.AdjustedPredictedPoints),
				FixtureFactor:  round2(p.FixtureFactor),
			})
		}
		out.Squads = append(out.Squads, SquadSummary{
			Strategy:        s.Name,
			Title:           s.Title,
			TotalCost:       millions(s.Squad.Stats.TotalCost),
			RemainingBudget: millions(s.Squad.Stats.RemainingBudget),
			TotalPoints:     round2(s.Squad.Stats.TotalPredictedPoints),
			Formation:       s.Squad.Stats.FormationLabel,
			Players:         picks,
		})
	}
	if len(result.Failures) > 0 {
		out.Failures = make(map[string]string, len(result.Failures))
		for _, f := range result.Failures {
			out.Failures[f.Name] = f.Err.Error()
		}
	}
	return out, nil
}

func (t *tools) fixtureDifficulty(ctx context.Context, _ *mcp.CallToolRequest, args FixtureDifficultyArgs) (*mcp.CallToolResult, any, error) {
	report, err := t.service.TeamDifficulties(ctx, args.Window, args.Weight)
	if err != nil {
		t.logger.WarnContext(ctx, "mcp fixture_difficulty failed", "error", err)
		return toolError(err), nil, nil
	}

	out := FixtureDifficultyResult{
		StartGameweek: report.StartGameweek,
		EndGameweek:   report.EndGameweek,
		Teams:         make([]TeamDifficulty, 0, len(report.Teams)),
	}
	for _, team := range report.Teams {
		out.Teams = append(out.Teams, TeamDifficulty{
			Team:              team.Team,
			AverageDifficulty: round2(team.AverageDifficulty),
			Factor:            round2(team.Factor),
		})
	}
	return toolJSON(out)
}

func millions(tenths int64) float64 {
	return fantasy.PriceToMillions(tenths).InexactFloat64()
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	raw, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encode tool result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
