package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/riskibarqy/fpl-squad-optimizer/internal/platform/logging"
)

const refreshTimeout = 30 * time.Second

// Refreshable is a cached source that can be reloaded from its upstream.
type Refreshable interface {
	Refresh(ctx context.Context) (int, error)
}

// Refresher reloads cached sources on a cron schedule.
type Refresher struct {
	spec    string
	cron    *cron.Cron
	targets map[string]Refreshable
	logger  *logging.Logger
}

func NewRefresher(spec string, logger *logging.Logger, targets map[string]Refreshable) *Refresher {
	if logger == nil {
		logger = logging.Default()
	}
	return &Refresher{
		spec:    spec,
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		targets: targets,
		logger:  logger.Named("refresher"),
	}
}

func (r *Refresher) Start() error {
	if _, err := r.cron.AddFunc(r.spec, func() { r.RefreshAll(context.Background()) }); err != nil {
		return fmt.Errorf("schedule refresh %q: %w", r.spec, err)
	}
	r.cron.Start()
	r.logger.Info("refresher started", "spec", r.spec, "targets", len(r.targets))
	return nil
}

// Stop waits for a running refresh to finish or ctx to expire.
func (r *Refresher) Stop(ctx context.Context) {
	done := r.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
	r.logger.Info("refresher stopped")
}

// RefreshAll reloads every target in name order. A failing target keeps its
// previous cached value and does not stop the others.
func (r *Refresher) RefreshAll(ctx context.Context) map[string]error {
	names := make([]string, 0, len(r.targets))
	for name := range r.targets {
		names = append(names, name)
	}
	sort.Strings(names)

	errs := make(map[string]error)
	for _, name := range names {
		runCtx, cancel := context.WithTimeout(ctx, refreshTimeout)
		start := time.Now()
		count, err := r.targets[name].Refresh(runCtx)
		cancel()
		if err != nil {
			errs[name] = err
			r.logger.WarnContext(ctx, "cache refresh failed", "target", name, "error", err)
			continue
		}
		r.logger.InfoContext(ctx, "cache refreshed",
			"target", name,
			"items", count,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	return errs
}
