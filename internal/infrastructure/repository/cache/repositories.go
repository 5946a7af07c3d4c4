package cache

import (
	"context"

	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/fixture"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/player"
	basecache "github.com/riskibarqy/fpl-squad-optimizer/internal/platform/cache"
)

const (
	predictionsKey = "predictions:list"
	scheduleKey    = "schedule:current"
)

type PredictionRepository struct {
	next  player.PredictionRepository
	cache *basecache.Store
}

func NewPredictionRepository(next player.PredictionRepository, cache *basecache.Store) *PredictionRepository {
	return &PredictionRepository{next: next, cache: cache}
}

func (r *PredictionRepository) ListPredictions(ctx context.Context) ([]player.Record, error) {
	items, err := basecache.Load(ctx, r.cache, predictionsKey, func(ctx context.Context) ([]player.Record, error) {
		items, err := r.next.ListPredictions(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Record(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]player.Record(nil), items...), nil
}

// Refresh reloads predictions from the underlying source.
func (r *PredictionRepository) Refresh(ctx context.Context) (int, error) {
	v, err := r.cache.Refresh(ctx, predictionsKey, func(ctx context.Context) (any, error) {
		return r.next.ListPredictions(ctx)
	})
	if err != nil {
		return 0, err
	}
	items, _ := v.([]player.Record)
	return len(items), nil
}

type ScheduleRepository struct {
	next  fixture.ScheduleRepository
	cache *basecache.Store
}

func NewScheduleRepository(next fixture.ScheduleRepository, cache *basecache.Store) *ScheduleRepository {
	return &ScheduleRepository{next: next, cache: cache}
}

func (r *ScheduleRepository) GetSchedule(ctx context.Context) (fixture.Schedule, error) {
	schedule, err := basecache.Load(ctx, r.cache, scheduleKey, r.next.GetSchedule)
	if err != nil {
		return fixture.Schedule{}, err
	}

	return cloneSchedule(schedule), nil
}

// Refresh reloads the schedule from the underlying source.
func (r *ScheduleRepository) Refresh(ctx context.Context) (int, error) {
	v, err := r.cache.Refresh(ctx, scheduleKey, func(ctx context.Context) (any, error) {
		return r.next.GetSchedule(ctx)
	})
	if err != nil {
		return 0, err
	}
	schedule, _ := v.(fixture.Schedule)
	return len(schedule.Fixtures), nil
}

func cloneSchedule(in fixture.Schedule) fixture.Schedule {
	out := fixture.Schedule{
		Events:   append([]fixture.Event(nil), in.Events...),
		Fixtures: append([]fixture.Fixture(nil), in.Fixtures...),
	}
	if in.TeamNames != nil {
		out.TeamNames = make(map[string]string, len(in.TeamNames))
		for k, v := range in.TeamNames {
			out.TeamNames[k] = v
		}
	}
	return out
}
