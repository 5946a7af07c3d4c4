package fixture

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

const (
	DefaultWindow = 5
	DefaultWeight = 0.15

	NeutralDifficulty = 3.0
	MinFactor         = 0.8
	MaxFactor         = 1.2
)

var ErrInvalidWindow = errors.New("fixture window must be positive")

// Difficulties maps a team name to its average upcoming fixture difficulty.
// Teams with no fixture in the window are absent, never zero.
type Difficulties map[string]float64

// Lookup returns the average for team, or NaN when the team has no entry.
func (d Difficulties) Lookup(team string) float64 {
	avg, ok := d[team]
	if !ok {
		return math.NaN()
	}
	return avg
}

// Adjuster turns a fixture schedule into per-team difficulty averages.
type Adjuster struct {
	window int
	weight float64
}

func NewAdjuster(window int, weight float64) (*Adjuster, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindow, window)
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return nil, fmt.Errorf("fixture weight must be finite")
	}
	return &Adjuster{window: window, weight: weight}, nil
}

func (a *Adjuster) Window() int {
	return a.window
}

func (a *Adjuster) Weight() float64 {
	return a.weight
}

// Factor is ComputeFactor bound to the adjuster weight.
func (a *Adjuster) Factor(avg float64) float64 {
	return ComputeFactor(avg, a.weight)
}

// StartGameweek picks the first gameweek of the lookahead window: the event
// flagged current, else the one flagged next, else the lowest scheduled
// gameweek among fixtures, else 1.
func StartGameweek(events []Event, fixtures []Fixture) int {
	for _, ev := range events {
		if ev.IsCurrent {
			return ev.ID
		}
	}
	for _, ev := range events {
		if ev.IsNext {
			return ev.ID
		}
	}

	start := 0
	for _, fx := range fixtures {
		if !fx.Scheduled() {
			continue
		}
		if start == 0 || fx.Gameweek < start {
			start = fx.Gameweek
		}
	}
	if start == 0 {
		return 1
	}
	return start
}

// Range returns the inclusive gameweek range [start, end] for schedule.
func (a *Adjuster) Range(schedule Schedule) (int, int) {
	start := StartGameweek(schedule.Events, schedule.Fixtures)
	return start, start + a.window - 1
}

// TeamDifficulties averages each team's side-specific difficulty over the
// fixtures that fall inside the window.
func (a *Adjuster) TeamDifficulties(schedule Schedule) Difficulties {
	start, end := a.Range(schedule)

	byTeamID := make(map[string][]float64)
	collect := func(teamID string, difficulty int) {
		if teamID == "" {
			return
		}
		byTeamID[teamID] = append(byTeamID[teamID], float64(difficulty))
	}

	for _, fx := range schedule.Fixtures {
		if !fx.Scheduled() || fx.Gameweek < start || fx.Gameweek > end {
			continue
		}
		collect(fx.HomeTeamID, fx.HomeDifficulty)
		collect(fx.AwayTeamID, fx.AwayDifficulty)
	}

	out := make(Difficulties, len(byTeamID))
	for teamID, values := range byTeamID {
		if len(values) == 0 {
			continue
		}
		name := teamID
		if schedule.TeamNames != nil {
			resolved, ok := schedule.TeamNames[teamID]
			if !ok || resolved == "" {
				continue
			}
			name = resolved
		}
		out[name] = stat.Mean(values, nil)
	}

	return out
}

// ComputeFactor converts an average difficulty (1 easy .. 5 hard) into a
// multiplier centered on 1.0 at difficulty 3 and clamped to [0.8, 1.2].
// NaN means no fixtures were found and yields a neutral 1.0.
func ComputeFactor(avg, weight float64) float64 {
	if math.IsNaN(avg) || math.IsInf(avg, 0) {
		return 1.0
	}
	factor := 1.0 + (NeutralDifficulty-avg)*weight
	if math.IsNaN(factor) {
		return 1.0
	}
	return math.Max(MinFactor, math.Min(MaxFactor, factor))
}

// TeamFactor is one row of the difficulty table.
type TeamFactor struct {
	Team              string
	AverageDifficulty float64
	Factor            float64
}

// Table flattens difficulties into rows sorted by easiest run first, then name.
func (d Difficulties) Table(weight float64) []TeamFactor {
	out := make([]TeamFactor, 0, len(d))
	for team, avg := range d {
		out = append(out, TeamFactor{
			Team:              team,
			AverageDifficulty: avg,
			Factor:            ComputeFactor(avg, weight),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AverageDifficulty != out[j].AverageDifficulty {
			return out[i].AverageDifficulty < out[j].AverageDifficulty
		}
		return out[i].Team < out[j].Team
	})
	return out
}
