package fixture

import (
	"fmt"
	"strings"
	"time"
)

const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Fixture represents one match with FPL difficulty ratings for both sides.
// Gameweek zero means the fixture is not scheduled into any gameweek yet.
type Fixture struct {
	ID             string
	Gameweek       int
	HomeTeamID     string
	AwayTeamID     string
	HomeDifficulty int
	AwayDifficulty int
	KickoffAt      *time.Time
	Finished       bool
}

func (f Fixture) Scheduled() bool {
	return f.Gameweek > 0
}

func (f Fixture) Validate() error {
	if f.Gameweek < 0 {
		return fmt.Errorf("fixture gameweek must not be negative: %d", f.Gameweek)
	}
	if strings.TrimSpace(f.HomeTeamID) == "" || strings.TrimSpace(f.AwayTeamID) == "" {
		return fmt.Errorf("fixture home and away team ids are required")
	}
	if f.HomeDifficulty < MinDifficulty || f.HomeDifficulty > MaxDifficulty {
		return fmt.Errorf("home difficulty out of range: %d", f.HomeDifficulty)
	}
	if f.AwayDifficulty < MinDifficulty || f.AwayDifficulty > MaxDifficulty {
		return fmt.Errorf("away difficulty out of range: %d", f.AwayDifficulty)
	}

	return nil
}

// Event is one gameweek in the season calendar.
type Event struct {
	ID        int
	Name      string
	IsCurrent bool
	IsNext    bool
	Finished  bool
}

// Schedule bundles the calendar, fixture list and the team directory.
// TeamNames maps team id to display name; a nil map means ids are used as names.
type Schedule struct {
	Events    []Event
	Fixtures  []Fixture
	TeamNames map[string]string
}
