package fantasy

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/player"
)

func candidate(id, team string, pos player.Position, price int64, score float64) player.Record {
	return player.Record{
		ID:                      id,
		Name:                    "Player " + id,
		Team:                    team,
		Position:                pos,
		Price:                   price,
		RawPredictedPoints:      score,
		FixtureFactor:           1.0,
		AdjustedPredictedPoints: score,
	}
}

func samplePool() []player.Record {
	return []player.Record{
		candidate("g1", "T1", player.PositionGoalkeeper, 50, 5.0),
		candidate("g2", "T2", player.PositionGoalkeeper, 45, 4.0),
		candidate("g3", "T3", player.PositionGoalkeeper, 40, 3.0),
		candidate("d1", "T1", player.PositionDefender, 60, 6.0),
		candidate("d2", "T2", player.PositionDefender, 55, 5.5),
		candidate("d3", "T3", player.PositionDefender, 50, 5.0),
		candidate("d4", "T4", player.PositionDefender, 45, 4.5),
		candidate("d5", "T5", player.PositionDefender, 45, 4.0),
		candidate("d6", "T6", player.PositionDefender, 40, 3.5),
		candidate("d7", "T1", player.PositionDefender, 40, 3.0),
		candidate("m1", "T4", player.PositionMidfielder, 100, 9.0),
		candidate("m2", "T5", player.PositionMidfielder, 90, 8.0),
		candidate("m3", "T6", player.PositionMidfielder, 80, 7.0),
		candidate("m4", "T7", player.PositionMidfielder, 70, 6.0),
		candidate("m5", "T8", player.PositionMidfielder, 60, 5.0),
		candidate("m6", "T7", player.PositionMidfielder, 50, 4.0),
		candidate("m7", "T8", player.PositionMidfielder, 45, 3.0),
		candidate("f1", "T7", player.PositionForward, 110, 8.5),
		candidate("f2", "T8", player.PositionForward, 90, 7.5),
		candidate("f3", "T3", player.PositionForward, 70, 6.0),
		candidate("f4", "T2", player.PositionForward, 60, 5.0),
		candidate("f5", "T6", player.PositionForward, 50, 4.0),
	}
}

func ids(records []player.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestSelectSquadFillsFormation(t *testing.T) {
	rules := DefaultRules()

	squad, err := SelectSquad(samplePool(), rules)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"g1", "g2",
		"d1", "d2", "d3", "d4", "d5",
		"m1", "m2", "m3", "m4", "m5",
		"f1", "f2", "f5",
	}, ids(squad.Players))
	require.NoError(t, ValidatePicks(squad.Players, rules))

	stats := squad.Stats
	assert.Equal(t, int64(1000), stats.TotalCost)
	assert.Equal(t, int64(0), stats.RemainingBudget)
	assert.InDelta(t, 89.0, stats.TotalPredictedPoints, 1e-9)
	assert.InDelta(t, 89.0, stats.TotalRawPredictedPoints, 1e-9)
	assert.InDelta(t, 89.0/15.0, stats.AveragePredictedPoints, 1e-9)
	assert.InDelta(t, 0.89, stats.ValueForMoney, 1e-9)
	assert.Equal(t, 15, stats.PlayersCount)
	assert.Equal(t, "5-5-3", stats.FormationLabel)
	assert.Equal(t, map[player.Position]int{
		player.PositionGoalkeeper: 2,
		player.PositionDefender:   5,
		player.PositionMidfielder: 5,
		player.PositionForward:    3,
	}, stats.Formation)
}

func TestSelectSquadRespectsTeamLimit(t *testing.T) {
	pool := []player.Record{
		candidate("g1", "T1", player.PositionGoalkeeper, 50, 5),
		candidate("g2", "T2", player.PositionGoalkeeper, 50, 5),
		candidate("d1", "T1", player.PositionDefender, 50, 5),
		candidate("d2", "T2", player.PositionDefender, 50, 5),
		candidate("d3", "T3", player.PositionDefender, 50, 5),
		candidate("d4", "T4", player.PositionDefender, 50, 5),
		candidate("d5", "T5", player.PositionDefender, 50, 5),
		candidate("x1", "TeamX", player.PositionMidfielder, 50, 10),
		candidate("x2", "TeamX", player.PositionMidfielder, 50, 9),
		candidate("x3", "TeamX", player.PositionMidfielder, 50, 8),
		candidate("x4", "TeamX", player.PositionMidfielder, 50, 7),
		candidate("o1", "TA", player.PositionMidfielder, 50, 6.5),
		candidate("o2", "TB", player.PositionMidfielder, 50, 6),
		candidate("o3", "TC", player.PositionMidfielder, 50, 5),
		candidate("f1", "T6", player.PositionForward, 50, 5),
		candidate("f2", "T7", player.PositionForward, 50, 5),
		candidate("f3", "T8", player.PositionForward, 50, 5),
	}

	squad, err := SelectSquad(pool, DefaultRules())
	require.NoError(t, err)

	teamX := 0
	for _, p := range squad.Players {
		if p.Team == "TeamX" {
			teamX++
		}
	}
	assert.Equal(t, 3, teamX)
	assert.NotContains(t, ids(squad.Players), "x4")
	assert.Contains(t, ids(squad.Players), "o1")
	assert.Contains(t, ids(squad.Players), "o2")
	assert.NotContains(t, ids(squad.Players), "o3")
}

func TestSelectSquadTeamLimitLeavesPositionShort(t *testing.T) {
	pool := []player.Record{
		candidate("g1", "T1", player.PositionGoalkeeper, 50, 5),
		candidate("g2", "T2", player.PositionGoalkeeper, 50, 5),
		candidate("d1", "T1", player.PositionDefender, 50, 5),
		candidate("d2", "T2", player.PositionDefender, 50, 5),
		candidate("d3", "T3", player.PositionDefender, 50, 5),
		candidate("d4", "T4", player.PositionDefender, 50, 5),
		candidate("d5", "T5", player.PositionDefender, 50, 5),
		candidate("x1", "TeamX", player.PositionMidfielder, 50, 10),
		candidate("x2", "TeamX", player.PositionMidfielder, 50, 9),
		candidate("x3", "TeamX", player.PositionMidfielder, 50, 8),
		candidate("x4", "TeamX", player.PositionMidfielder, 50, 7),
		candidate("o1", "TA", player.PositionMidfielder, 50, 6.5),
		candidate("f1", "T6", player.PositionForward, 50, 5),
		candidate("f2", "T7", player.PositionForward, 50, 5),
		candidate("f3", "T8", player.PositionForward, 50, 5),
	}

	_, err := SelectSquad(pool, DefaultRules())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBudgetInfeasible))

	var infeasible *BudgetInfeasibleError
	require.True(t, errors.As(err, &infeasible))
	assert.Equal(t, player.PositionMidfielder, infeasible.Position)
	assert.Equal(t, 4, infeasible.Selected)
	assert.Equal(t, 5, infeasible.Required)
	assert.Equal(t, 1, infeasible.SkippedTeamLimit)
	assert.Equal(t, 0, infeasible.SkippedOverBudget)
}

func TestSelectSquadBudgetInfeasible(t *testing.T) {
	rules := DefaultRules()
	rules.BudgetCap = 200

	_, err := SelectSquad(samplePool(), rules)

	var infeasible *BudgetInfeasibleError
	require.True(t, errors.As(err, &infeasible), "expected budget infeasible, got %v", err)
	assert.False(t, errors.Is(err, ErrPoolExhausted))
	assert.Equal(t, player.PositionDefender, infeasible.Position)
	assert.Equal(t, 2, infeasible.Selected)
	assert.Equal(t, int64(0), infeasible.RemainingBudget)
	assert.Equal(t, 5, infeasible.SkippedOverBudget)
}

func TestSelectSquadPoolExhaustedCheckedUpfront(t *testing.T) {
	pool := make([]player.Record, 0)
	for _, r := range samplePool() {
		if r.Position == player.PositionForward && r.ID != "f1" {
			continue
		}
		pool = append(pool, r)
	}
	rules := DefaultRules()
	rules.BudgetCap = 10

	_, err := SelectSquad(pool, rules)

	var exhausted *PoolExhaustedError
	require.True(t, errors.As(err, &exhausted), "expected pool exhausted, got %v", err)
	assert.True(t, errors.Is(err, ErrPoolExhausted))
	assert.False(t, errors.Is(err, ErrBudgetInfeasible))
	assert.Equal(t, player.PositionForward, exhausted.Position)
	assert.Equal(t, 1, exhausted.Available)
	assert.Equal(t, 3, exhausted.Required)
}

func TestSelectSquadTieBreak(t *testing.T) {
	rules := Rules{
		Formation:         Formation{{Position: player.PositionGoalkeeper, Min: 1, Max: 1}},
		BudgetCap:         100,
		MaxPlayersPerTeam: 3,
	}
	pool := []player.Record{
		candidate("a", "T1", player.PositionGoalkeeper, 50, 5),
		candidate("c", "T3", player.PositionGoalkeeper, 45, 5),
		candidate("b", "T2", player.PositionGoalkeeper, 45, 5),
	}

	squad, err := SelectSquad(pool, rules)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, ids(squad.Players))
}

func TestSelectSquadIgnoresPositionsOutsideFormation(t *testing.T) {
	rules := Rules{
		Formation: Formation{
			{Position: player.PositionGoalkeeper, Min: 1, Max: 1},
			{Position: player.PositionDefender, Min: 1, Max: 2},
		},
		BudgetCap:         1000,
		MaxPlayersPerTeam: 3,
	}

	squad, err := SelectSquad(samplePool(), rules)
	require.NoError(t, err)
	assert.Equal(t, []string{"g1", "d1", "d2"}, ids(squad.Players))
	assert.Equal(t, "2", squad.Stats.FormationLabel)
}

func TestSelectSquadInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]player.Record, *Rules) []player.Record
	}{
		{
			name: "zero budget",
			mutate: func(pool []player.Record, rules *Rules) []player.Record {
				rules.BudgetCap = 0
				return pool
			},
		},
		{
			name: "zero team limit",
			mutate: func(pool []player.Record, rules *Rules) []player.Record {
				rules.MaxPlayersPerTeam = 0
				return pool
			},
		},
		{
			name: "empty formation",
			mutate: func(pool []player.Record, rules *Rules) []player.Record {
				rules.Formation = nil
				return pool
			},
		},
		{
			name: "duplicate id",
			mutate: func(pool []player.Record, _ *Rules) []player.Record {
				pool[1].ID = pool[0].ID
				return pool
			},
		},
		{
			name: "non finite score",
			mutate: func(pool []player.Record, _ *Rules) []player.Record {
				pool[3].AdjustedPredictedPoints = math.NaN()
				return pool
			},
		},
		{
			name: "missing team",
			mutate: func(pool []player.Record, _ *Rules) []player.Record {
				pool[4].Team = ""
				return pool
			},
		},
		{
			name: "non positive price",
			mutate: func(pool []player.Record, _ *Rules) []player.Record {
				pool[5].Price = 0
				return pool
			},
		},
		{
			name: "unknown position",
			mutate: func(pool []player.Record, _ *Rules) []player.Record {
				pool[6].Position = "WB"
				return pool
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultRules()
			pool := tt.mutate(samplePool(), &rules)

			_, err := SelectSquad(pool, rules)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestSelectSquadIsDeterministicAndPure(t *testing.T) {
	pool := samplePool()
	before := ids(pool)

	first, err := SelectSquad(pool, DefaultRules())
	require.NoError(t, err)
	second, err := SelectSquad(pool, DefaultRules())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, before, ids(pool))
}

func TestSelectSquadStableWhenBudgetDoesNotBind(t *testing.T) {
	low := DefaultRules()
	low.BudgetCap = 2000
	high := DefaultRules()
	high.BudgetCap = 5000

	a, err := SelectSquad(samplePool(), low)
	require.NoError(t, err)
	b, err := SelectSquad(samplePool(), high)
	require.NoError(t, err)

	assert.Equal(t, ids(a.Players), ids(b.Players))
	assert.GreaterOrEqual(t, b.Stats.TotalPredictedPoints, a.Stats.TotalPredictedPoints)
	assert.Equal(t, int64(1020), a.Stats.TotalCost)
	assert.Equal(t, int64(980), a.Stats.RemainingBudget)
}
