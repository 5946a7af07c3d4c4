package fplapi

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/fixture"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/player"
)

// GetSchedule satisfies fixture.ScheduleRepository.
func (c *Client) GetSchedule(ctx context.Context) (fixture.Schedule, error) {
	var bootstrap bootstrapResponse
	if err := c.getJSON(ctx, pathBootstrap, &bootstrap); err != nil {
		return fixture.Schedule{}, fmt.Errorf("fetch bootstrap: %w", err)
	}

	var fixtures []fixturePayload
	if err := c.getJSON(ctx, pathFixtures, &fixtures); err != nil {
		return fixture.Schedule{}, fmt.Errorf("fetch fixtures: %w", err)
	}

	schedule := fixture.Schedule{
		Events:    mapEvents(bootstrap.Events),
		Fixtures:  make([]fixture.Fixture, 0, len(fixtures)),
		TeamNames: mapTeamNames(bootstrap.Teams),
	}
	for _, item := range fixtures {
		mapped, err := mapFixture(item)
		if err != nil {
			c.logger.WarnContext(ctx, "skip malformed fpl fixture", "fixture_id", item.ID, "error", err)
			continue
		}
		schedule.Fixtures = append(schedule.Fixtures, mapped)
	}

	return schedule, nil
}

// ListPredictions satisfies player.PredictionRepository using the API's own
// expected-points figure (ep_next).
func (c *Client) ListPredictions(ctx context.Context) ([]player.Record, error) {
	var bootstrap bootstrapResponse
	if err := c.getJSON(ctx, pathBootstrap, &bootstrap); err != nil {
		return nil, fmt.Errorf("fetch bootstrap: %w", err)
	}

	teams := mapTeamNames(bootstrap.Teams)
	out := make([]player.Record, 0, len(bootstrap.Elements))
	for _, item := range bootstrap.Elements {
		record, err := mapElement(item, teams)
		if err != nil {
			c.logger.DebugContext(ctx, "skip fpl element", "element_id", item.ID, "error", err)
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func mapEvents(items []eventPayload) []fixture.Event {
	out := make([]fixture.Event, 0, len(items))
	for _, item := range items {
		out = append(out, fixture.Event{
			ID:        item.ID,
			Name:      item.Name,
			IsCurrent: item.IsCurrent,
			IsNext:    item.IsNext,
			Finished:  item.Finished,
		})
	}
	return out
}

func mapTeamNames(items []teamPayload) map[string]string {
	if len(items) == 0 {
		return nil
	}
	out := make(map[string]string, len(items))
	for _, item := range items {
		out[strconv.Itoa(item.ID)] = item.Name
	}
	return out
}

func mapFixture(item fixturePayload) (fixture.Fixture, error) {
	out := fixture.Fixture{
		ID:             strconv.Itoa(item.ID),
		HomeTeamID:     strconv.Itoa(item.TeamH),
		AwayTeamID:     strconv.Itoa(item.TeamA),
		HomeDifficulty: item.TeamHDifficulty,
		AwayDifficulty: item.TeamADifficulty,
		Finished:       item.Finished,
	}
	// A null event means the fixture is postponed and not yet rescheduled.
	if item.Event != nil {
		out.Gameweek = *item.Event
	}
	if item.KickoffTime != nil && strings.TrimSpace(*item.KickoffTime) != "" {
		kickoff, err := time.Parse(time.RFC3339, strings.TrimSpace(*item.KickoffTime))
		if err != nil {
			return fixture.Fixture{}, fmt.Errorf("parse kickoff_time: %w", err)
		}
		kickoff = kickoff.UTC()
		out.KickoffAt = &kickoff
	}
	if err := out.Validate(); err != nil {
		return fixture.Fixture{}, err
	}
	return out, nil
}

func mapElement(item elementPayload, teams map[string]string) (player.Record, error) {
	position, err := player.ParsePosition(strconv.Itoa(item.ElementType))
	if err != nil {
		return player.Record{}, err
	}
	team, ok := teams[strconv.Itoa(item.Team)]
	if !ok {
		return player.Record{}, fmt.Errorf("unknown team id %d", item.Team)
	}

	var expected float64
	if raw := strings.TrimSpace(item.EPNext); raw != "" {
		expected, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return player.Record{}, fmt.Errorf("parse ep_next %q: %w", raw, err)
		}
	}

	return player.Record{
		ID:                 strconv.Itoa(item.ID),
		Name:               item.WebName,
		Team:               team,
		Position:           position,
		Price:              item.NowCost,
		RawPredictedPoints: expected,
	}, nil
}
