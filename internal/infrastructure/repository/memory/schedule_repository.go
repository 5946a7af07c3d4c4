package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/fixture"
)

type ScheduleRepository struct {
	mu       sync.RWMutex
	schedule fixture.Schedule
}

func NewScheduleRepository(schedule fixture.Schedule) *ScheduleRepository {
	return &ScheduleRepository{schedule: schedule}
}

func (r *ScheduleRepository) GetSchedule(_ context.Context) (fixture.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := fixture.Schedule{
		Events:   append([]fixture.Event(nil), r.schedule.Events...),
		Fixtures: append([]fixture.Fixture(nil), r.schedule.Fixtures...),
	}
	if r.schedule.TeamNames != nil {
		out.TeamNames = make(map[string]string, len(r.schedule.TeamNames))
		for id, name := range r.schedule.TeamNames {
			out.TeamNames[id] = name
		}
	}
	return out, nil
}
