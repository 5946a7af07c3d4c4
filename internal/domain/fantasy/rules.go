package fantasy

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/player"
)

var (
	ErrInvalidSquadSize       = errors.New("invalid squad size")
	ErrExceededBudget         = errors.New("budget cap exceeded")
	ErrExceededTeamLimit      = errors.New("max players from same team exceeded")
	ErrInsufficientFormation  = errors.New("minimum formation requirement not met")
	ErrExceededFormation      = errors.New("maximum formation requirement exceeded")
	ErrUnknownPlayerPosition  = errors.New("unknown player position")
	ErrDuplicatePlayerInSquad = errors.New("duplicate player in squad")
)

const (
	DefaultBudgetCap         int64 = 1000
	DefaultMaxPlayersPerTeam       = 3
)

// PositionQuota is the allowed player count range for one position.
type PositionQuota struct {
	Position player.Position
	Min      int
	Max      int
}

// Formation is the ordered list of quotas. Selection fills positions in this order.
type Formation []PositionQuota

func DefaultFormation() Formation {
	return Formation{
		{Position: player.PositionGoalkeeper, Min: 2, Max: 2},
		{Position: player.PositionDefender, Min: 5, Max: 5},
		{Position: player.PositionMidfielder, Min: 5, Max: 5},
		{Position: player.PositionForward, Min: 3, Max: 3},
	}
}

// SquadSize is the sum of every position maximum.
func (f Formation) SquadSize() int {
	total := 0
	for _, q := range f {
		total += q.Max
	}
	return total
}

func (f Formation) Quota(pos player.Position) (PositionQuota, bool) {
	for _, q := range f {
		if q.Position == pos {
			return q, true
		}
	}
	return PositionQuota{}, false
}

func (f Formation) Validate() error {
	if len(f) == 0 {
		return fmt.Errorf("formation must list at least one position")
	}
	seen := make(map[player.Position]struct{}, len(f))
	for _, q := range f {
		if _, ok := player.AllPositions[q.Position]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPlayerPosition, q.Position)
		}
		if _, dup := seen[q.Position]; dup {
			return fmt.Errorf("formation lists position %s twice", q.Position)
		}
		seen[q.Position] = struct{}{}
		if q.Min < 0 || q.Max < q.Min {
			return fmt.Errorf("formation quota for %s must satisfy 0 <= min <= max, got %d-%d", q.Position, q.Min, q.Max)
		}
	}
	if f.SquadSize() <= 0 {
		return fmt.Errorf("%w: formation allows no players", ErrInvalidSquadSize)
	}
	return nil
}

// String renders the formation in the same form ParseFormation accepts.
func (f Formation) String() string {
	parts := make([]string, 0, len(f))
	for _, q := range f {
		parts = append(parts, fmt.Sprintf("%s:%d-%d", q.Position, q.Min, q.Max))
	}
	return strings.Join(parts, ",")
}

// ParseFormation reads "GKP:2-2,DEF:5-5,MID:5-5,FWD:3-3". A single number is
// accepted as an exact count ("DEF:5").
func ParseFormation(raw string) (Formation, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("formation is empty")
	}

	out := make(Formation, 0, 4)
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		posRaw, countRaw, ok := strings.Cut(item, ":")
		if !ok {
			return nil, fmt.Errorf("formation entry %q must be POS:MIN-MAX", item)
		}
		pos, err := player.ParsePosition(posRaw)
		if err != nil {
			return nil, err
		}

		minRaw, maxRaw, ranged := strings.Cut(countRaw, "-")
		if !ranged {
			maxRaw = minRaw
		}
		minCount, err := strconv.Atoi(strings.TrimSpace(minRaw))
		if err != nil {
			return nil, fmt.Errorf("parse formation min for %s: %w", pos, err)
		}
		maxCount, err := strconv.Atoi(strings.TrimSpace(maxRaw))
		if err != nil {
			return nil, fmt.Errorf("parse formation max for %s: %w", pos, err)
		}
		out = append(out, PositionQuota{Position: pos, Min: minCount, Max: maxCount})
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Rules stores squad construction parameters. BudgetCap is in tenths of a million.
type Rules struct {
	Formation         Formation
	BudgetCap         int64
	MaxPlayersPerTeam int
}

func DefaultRules() Rules {
	return Rules{
		Formation:         DefaultFormation(),
		BudgetCap:         DefaultBudgetCap,
		MaxPlayersPerTeam: DefaultMaxPlayersPerTeam,
	}
}

func (r Rules) Validate() error {
	if r.BudgetCap <= 0 {
		return fmt.Errorf("budget cap must be greater than zero")
	}
	if r.MaxPlayersPerTeam <= 0 {
		return fmt.Errorf("max players per team must be greater than zero")
	}
	return r.Formation.Validate()
}

// ValidatePicks checks a finished squad against every hard constraint.
func ValidatePicks(picks []player.Record, rules Rules) error {
	if len(picks) == 0 || len(picks) > rules.Formation.SquadSize() {
		return fmt.Errorf("%w: expected at most %d, got %d", ErrInvalidSquadSize, rules.Formation.SquadSize(), len(picks))
	}

	teamCounter := make(map[string]int)
	positionCounter := make(map[player.Position]int)
	playerSet := make(map[string]struct{})
	var totalCost int64

	for _, pick := range picks {
		if pick.ID == "" {
			return fmt.Errorf("player id is required")
		}
		if _, exists := playerSet[pick.ID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayerInSquad, pick.ID)
		}
		playerSet[pick.ID] = struct{}{}

		if _, ok := rules.Formation.Quota(pick.Position); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPlayerPosition, pick.Position)
		}
		if pick.Team == "" {
			return fmt.Errorf("team is required for player %s", pick.ID)
		}
		if pick.Price <= 0 {
			return fmt.Errorf("player price must be greater than zero: %s", pick.ID)
		}

		teamCounter[pick.Team]++
		if teamCounter[pick.Team] > rules.MaxPlayersPerTeam {
			return fmt.Errorf("%w: team=%s max=%d", ErrExceededTeamLimit, pick.Team, rules.MaxPlayersPerTeam)
		}

		positionCounter[pick.Position]++
		totalCost += pick.Price
	}

	if totalCost > rules.BudgetCap {
		return fmt.Errorf("%w: cap=%d used=%d", ErrExceededBudget, rules.BudgetCap, totalCost)
	}

	for _, q := range rules.Formation {
		if positionCounter[q.Position] < q.Min {
			return fmt.Errorf("%w: pos=%s min=%d current=%d", ErrInsufficientFormation, q.Position, q.Min, positionCounter[q.Position])
		}
		if positionCounter[q.Position] > q.Max {
			return fmt.Errorf("%w: pos=%s max=%d current=%d", ErrExceededFormation, q.Position, q.Max, positionCounter[q.Position])
		}
	}

	return nil
}
