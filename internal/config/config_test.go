package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/fpl-squad-optimizer/internal/domain/fantasy"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DataSource != DataSourceMemory {
		t.Fatalf("expected memory data source by default, got %q", cfg.DataSource)
	}
	if cfg.OptimizerBudget != fantasy.DefaultBudgetCap {
		t.Fatalf("expected default budget %d, got %d", fantasy.DefaultBudgetCap, cfg.OptimizerBudget)
	}
	if cfg.OptimizerFixtureWindow != 5 || cfg.OptimizerFixtureWeight != 0.15 {
		t.Fatalf("unexpected fixture defaults: window=%d weight=%v", cfg.OptimizerFixtureWindow, cfg.OptimizerFixtureWeight)
	}
	if cfg.OptimizerTeamLimit != 3 {
		t.Fatalf("expected team limit 3, got %d", cfg.OptimizerTeamLimit)
	}
	if cfg.OptimizerFormation.SquadSize() != 15 {
		t.Fatalf("expected 15-player default formation, got %d", cfg.OptimizerFormation.SquadSize())
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("expected info log level, got %s", cfg.LogLevel)
	}
	if !cfg.MCPEnabled {
		t.Fatalf("expected MCP enabled by default")
	}
}

func TestLoad_SwaggerDefaultsByEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("SWAGGER_ENABLED", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SwaggerEnabled {
		t.Fatalf("expected swagger disabled in prod by default")
	}

	t.Setenv("APP_ENV", EnvStage)
	cfg, err = Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.SwaggerEnabled {
		t.Fatalf("expected swagger enabled outside prod")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-other=1, uptrace-dsn='https://token@api.uptrace.dev?grpc=4317'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_LOG_LEVEL", "verbose")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown APP_LOG_LEVEL")
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_SERVICE_NAME", "fpl-optimizer-staging")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "fpl-optimizer-staging" {
		t.Fatalf("expected pyroscope app name to follow service name, got %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("CORS_ALLOWED_ORIGINS", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected CORS origins: %v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("csv origins", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://fpl.example.com, ,http://localhost:3000")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("expected 2 origins, got %v", cfg.CORSAllowedOrigins)
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:3000" {
			t.Fatalf("unexpected second origin: %q", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_DataSourceValidation(t *testing.T) {
	t.Run("rejects unknown source", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("DATA_SOURCE", "redis")

		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown DATA_SOURCE")
		}
	})

	t.Run("accepts postgres", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("DATA_SOURCE", "Postgres")
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "false")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.DataSource != DataSourcePostgres {
			t.Fatalf("expected postgres, got %q", cfg.DataSource)
		}
		if cfg.DBDisablePreparedBinary {
			t.Fatalf("expected DBDisablePreparedBinary=false")
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_TTL", "2m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.CacheEnabled {
		t.Fatalf("expected CacheEnabled=false")
	}
	if cfg.CacheTTL != 2*time.Minute {
		t.Fatalf("unexpected CacheTTL: %s", cfg.CacheTTL)
	}

	t.Setenv("CACHE_TTL", "0s")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero CACHE_TTL")
	}
}

func TestLoad_RefreshCronValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("REFRESH_CRON", "*/10 * * * *")
	if _, err := Load(); err != nil {
		t.Fatalf("expected standard cron spec to load: %v", err)
	}

	t.Setenv("REFRESH_CRON", "every now and then")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid REFRESH_CRON")
	}
}

func TestLoad_FPLAPIConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FPL_API_ENABLED", "true")
	t.Setenv("FPL_API_BASE_URL", "http://fpl.internal/api")
	t.Setenv("FPL_API_TIMEOUT", "3s")
	t.Setenv("FPL_API_MAX_RETRIES", "4")
	t.Setenv("FPL_API_CIRCUIT_FAILURE_COUNT", "7")
	t.Setenv("FPL_API_CIRCUIT_OPEN_TIMEOUT", "1m")
	t.Setenv("FPL_API_CIRCUIT_HALF_OPEN_MAX_REQ", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.FPLAPIEnabled || cfg.FPLAPIBaseURL != "http://fpl.internal/api" {
		t.Fatalf("unexpected FPL API config: %+v", cfg)
	}
	if cfg.FPLAPITimeout != 3*time.Second || cfg.FPLAPIMaxRetries != 4 {
		t.Fatalf("unexpected timeout/retries: %s/%d", cfg.FPLAPITimeout, cfg.FPLAPIMaxRetries)
	}
	if cfg.FPLAPICircuitFailureCount != 7 || cfg.FPLAPICircuitOpenTimeout != time.Minute || cfg.FPLAPICircuitHalfOpenMaxReq != 2 {
		t.Fatalf("unexpected circuit config: %+v", cfg)
	}

	t.Setenv("FPL_API_MAX_RETRIES", "-1")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative FPL_API_MAX_RETRIES")
	}
}

func TestLoad_OptimizerConfigParsing(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, cfg Config)
	}{
		{
			name: "decimal budget in millions",
			env:  map[string]string{"OPTIMIZER_BUDGET": "83.5"},
			check: func(t *testing.T, cfg Config) {
				if cfg.OptimizerBudget != 835 {
					t.Fatalf("expected 835 tenths, got %d", cfg.OptimizerBudget)
				}
			},
		},
		{
			name: "custom formation",
			env:  map[string]string{"OPTIMIZER_FORMATION": "GKP:1,DEF:3-4,MID:3-4,FWD:1-2"},
			check: func(t *testing.T, cfg Config) {
				if cfg.OptimizerFormation.SquadSize() != 11 {
					t.Fatalf("expected squad size 11, got %d", cfg.OptimizerFormation.SquadSize())
				}
			},
		},
		{name: "zero budget", env: map[string]string{"OPTIMIZER_BUDGET": "0"}, wantErr: true},
		{name: "text budget", env: map[string]string{"OPTIMIZER_BUDGET": "lots"}, wantErr: true},
		{name: "sub-tenth budget", env: map[string]string{"OPTIMIZER_BUDGET": "99.95"}, wantErr: true},
		{name: "zero window", env: map[string]string{"OPTIMIZER_FIXTURE_WINDOW": "0"}, wantErr: true},
		{name: "negative weight", env: map[string]string{"OPTIMIZER_FIXTURE_WEIGHT": "-0.1"}, wantErr: true},
		{name: "zero team limit", env: map[string]string{"OPTIMIZER_TEAM_LIMIT": "0"}, wantErr: true},
		{name: "bad formation", env: map[string]string{"OPTIMIZER_FORMATION": "GKP:two"}, wantErr: true},
		{name: "zero sweep workers", env: map[string]string{"OPTIMIZER_SWEEP_WORKERS": "0"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("load config: %v", err)
			}
			tc.check(t, cfg)
		})
	}
}
