package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/fpl-squad-optimizer/external/fplapi"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/config"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/fixture"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/player"
	cacherepo "github.com/riskibarqy/fpl-squad-optimizer/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/interfaces/httpapi"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/interfaces/mcptool"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/platform/cache"
	idgen "github.com/riskibarqy/fpl-squad-optimizer/internal/platform/id"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/platform/logging"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/platform/resilience"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/usecase"
)

// App owns the HTTP server and everything that must be closed with it.
type App struct {
	Server    *http.Server
	Service   *usecase.SuggestionService
	refresher *Refresher
	db        *sqlx.DB
	logger    *logging.Logger
}

type sources struct {
	predictions player.PredictionRepository
	schedule    fixture.ScheduleRepository
	db          *sqlx.DB
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	src, err := buildSources(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var refresher *Refresher
	if cfg.CacheEnabled {
		store := cache.NewStore(cfg.CacheTTL)
		predictions := cacherepo.NewPredictionRepository(src.predictions, store)
		schedule := cacherepo.NewScheduleRepository(src.schedule, store)
		src.predictions, src.schedule = predictions, schedule

		if cfg.RefreshCron != "" {
			refresher = NewRefresher(cfg.RefreshCron, logger, map[string]Refreshable{
				"predictions": predictions,
				"schedule":    schedule,
			})
		}
	}

	service := usecase.NewSuggestionService(
		src.predictions,
		src.schedule,
		usecase.NewStrategyGenerator(),
		optimizerDefaults(cfg),
		idgen.NewUUIDGenerator(),
		logger,
	)

	opts := httpapi.RouterOptions{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	if cfg.MCPEnabled {
		opts.MCPHandler = mcptool.NewHTTPHandler(mcptool.NewServer(service, cfg.ServiceName, cfg.ServiceVersion, logger))
	}

	handler := httpapi.NewHandler(service, logger)
	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, logger, opts),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		closeDB(src.db, logger)
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:    server,
		Service:   service,
		refresher: refresher,
		db:        src.db,
		logger:    logger,
	}, nil
}

// Start launches background jobs. The HTTP server is started by the caller.
func (a *App) Start() error {
	if a.refresher == nil {
		return nil
	}
	return a.refresher.Start()
}

// Shutdown drains the HTTP server, then stops jobs and closes the database.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.Server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	if a.refresher != nil {
		a.refresher.Stop(ctx)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}

func buildSources(ctx context.Context, cfg config.Config, logger *logging.Logger) (sources, error) {
	var src sources

	switch cfg.DataSource {
	case config.DataSourcePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return sources{}, err
		}
		if cfg.DBBootstrapSeed {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				closeDB(db, logger)
				return sources{}, fmt.Errorf("bootstrap seed: %w", err)
			}
			logger.Info("database seeded with demo pool")
		}
		src = sources{
			predictions: postgres.NewPredictionRepository(db),
			schedule:    postgres.NewScheduleRepository(db),
			db:          db,
		}
	default:
		src = sources{
			predictions: memory.NewPredictionRepository(memory.SeedPredictions()),
			schedule:    memory.NewScheduleRepository(memory.SeedSchedule()),
		}
	}

	if cfg.FPLAPIEnabled {
		client, err := fplapi.NewClient(fplapi.ClientConfig{
			BaseURL:    cfg.FPLAPIBaseURL,
			Timeout:    cfg.FPLAPITimeout,
			MaxRetries: cfg.FPLAPIMaxRetries,
			Logger:     logger.Named("fplapi"),
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.FPLAPICircuitEnabled,
				FailureThreshold: cfg.FPLAPICircuitFailureCount,
				OpenTimeout:      cfg.FPLAPICircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.FPLAPICircuitHalfOpenMaxReq,
			},
		})
		if err != nil {
			closeDB(src.db, logger)
			return sources{}, fmt.Errorf("build fpl api client: %w", err)
		}
		src.schedule = client
	}

	logger.Info("data sources ready",
		"data_source", cfg.DataSource,
		"fpl_api", cfg.FPLAPIEnabled,
		"cache", cfg.CacheEnabled,
	)
	return src, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open(
		"postgres",
		postgresDSN(cfg.DBURL, cfg.DBDisablePreparedBinary),
		dbTraceOptions(cfg.DBURL, cfg.ServiceName)...,
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func closeDB(db *sqlx.DB, logger *logging.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Warn("close database failed", "error", err)
	}
}

func optimizerDefaults(cfg config.Config) usecase.OptimizerDefaults {
	defaults := usecase.DefaultOptimizerDefaults()
	if cfg.OptimizerBudget > 0 {
		defaults.Budget = cfg.OptimizerBudget
	}
	if cfg.OptimizerFixtureWindow > 0 {
		defaults.FixtureWindow = cfg.OptimizerFixtureWindow
	}
	defaults.FixtureWeight = cfg.OptimizerFixtureWeight
	if cfg.OptimizerTeamLimit > 0 {
		defaults.TeamLimit = cfg.OptimizerTeamLimit
	}
	if len(cfg.OptimizerFormation) > 0 {
		defaults.Formation = cfg.OptimizerFormation
	}
	if cfg.OptimizerSweepWorkers > 0 {
		defaults.SweepWorkers = cfg.OptimizerSweepWorkers
	}
	return defaults
}
