package fixture

import "context"

// ScheduleRepository exposes the season calendar used for difficulty lookups.
type ScheduleRepository interface {
	GetSchedule(ctx context.Context) (Schedule, error)
}
