package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/scouting-panel/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("WAREHOUSE_DRIVER", "")
	t.Setenv("QUERY_CACHE_TTL", "")
	t.Setenv("REFERENCE_CACHE_TTL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.WarehouseDriver != WarehousePostgres {
		t.Fatalf("unexpected default warehouse driver: %q", cfg.WarehouseDriver)
	}
	if cfg.QueryCacheTTL != 5*time.Minute || cfg.ReferenceCacheTTL != time.Hour {
		t.Fatalf("unexpected cache ttls: query=%s reference=%s", cfg.QueryCacheTTL, cfg.ReferenceCacheTTL)
	}
	if !cfg.WarehouseCircuit.Enabled || cfg.WarehouseCircuit.FailureThreshold != 5 {
		t.Fatalf("unexpected circuit defaults: %+v", cfg.WarehouseCircuit)
	}
	if cfg.LogLevel != logging.LevelInfo || cfg.LogFormat != logging.FormatJSON {
		t.Fatalf("unexpected log defaults: level=%s format=%s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoad_WarehouseValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("WAREHOUSE_DRIVER", "snowflake")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown WAREHOUSE_DRIVER")
		}
	})

	t.Run("bigquery requires project", func(t *testing.T) {
		t.Setenv("WAREHOUSE_DRIVER", WarehouseBigQuery)
		t.Setenv("BIGQUERY_PROJECT_ID", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when BIGQUERY_PROJECT_ID is empty")
		}
	})

	t.Run("bigquery with project", func(t *testing.T) {
		t.Setenv("WAREHOUSE_DRIVER", "BigQuery")
		t.Setenv("BIGQUERY_PROJECT_ID", "scouting-prod")
		t.Setenv("WAREHOUSE_DATASET", "cartola_kpi")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.WarehouseDriver != WarehouseBigQuery || cfg.BigQueryProjectID != "scouting-prod" {
			t.Fatalf("unexpected bigquery config: %+v", cfg)
		}
	})

	t.Run("invalid circuit threshold", func(t *testing.T) {
		t.Setenv("WAREHOUSE_DRIVER", WarehouseMemory)
		t.Setenv("WAREHOUSE_CIRCUIT_FAILURE_COUNT", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for WAREHOUSE_CIRCUIT_FAILURE_COUNT=0")
		}
	})

	t.Run("invalid query timeout", func(t *testing.T) {
		t.Setenv("WAREHOUSE_DRIVER", WarehouseMemory)
		t.Setenv("WAREHOUSE_QUERY_TIMEOUT", "soon")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for WAREHOUSE_QUERY_TIMEOUT=soon")
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("WAREHOUSE_DRIVER", WarehouseMemory)

	t.Run("redis requires addr", func(t *testing.T) {
		t.Setenv("REDIS_ENABLED", "true")
		t.Setenv("REDIS_ADDR", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when REDIS_ENABLED=true without REDIS_ADDR")
		}
	})

	t.Run("custom ttls", func(t *testing.T) {
		t.Setenv("REDIS_ENABLED", "true")
		t.Setenv("REDIS_ADDR", "localhost:6379")
		t.Setenv("REDIS_DB", "2")
		t.Setenv("QUERY_CACHE_TTL", "90s")
		t.Setenv("REFERENCE_CACHE_TTL", "2h")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.QueryCacheTTL != 90*time.Second || cfg.ReferenceCacheTTL != 2*time.Hour {
			t.Fatalf("unexpected ttls: %s %s", cfg.QueryCacheTTL, cfg.ReferenceCacheTTL)
		}
		if !cfg.RedisEnabled || cfg.RedisAddr != "localhost:6379" || cfg.RedisDB != 2 {
			t.Fatalf("unexpected redis config: %+v", cfg)
		}
	})

	t.Run("non-positive ttl", func(t *testing.T) {
		t.Setenv("QUERY_CACHE_TTL", "0s")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for QUERY_CACHE_TTL=0s")
		}
	})

	t.Run("warmup workers must be positive", func(t *testing.T) {
		t.Setenv("CACHE_WARMUP_WORKERS", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for CACHE_WARMUP_WORKERS=0")
		}
	})
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_ObservabilityValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("uptrace requires dsn", func(t *testing.T) {
		t.Setenv("UPTRACE_ENABLED", "true")
		t.Setenv("UPTRACE_DSN", "")
		t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
		}
	})

	t.Run("uptrace dsn from otlp headers", func(t *testing.T) {
		t.Setenv("UPTRACE_ENABLED", "true")
		t.Setenv("UPTRACE_DSN", "")
		t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "uptrace-dsn='https://token@api.uptrace.dev'")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.UptraceDSN != "https://token@api.uptrace.dev" {
			t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
		}
	})

	t.Run("pyroscope app name defaults to service name", func(t *testing.T) {
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("APP_SERVICE_NAME", "scouting-panel-test")
		t.Setenv("PYROSCOPE_ENABLED", "true")
		t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
		t.Setenv("PYROSCOPE_APP_NAME", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.PyroscopeAppName != "scouting-panel-test" {
			t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
		}
	})

	t.Run("pprof defaults addr", func(t *testing.T) {
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("PPROF_ENABLED", "true")
		t.Setenv("PPROF_ADDR", "  ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.PprofAddr != ":6060" {
			t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
		}
	})
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("SCOUTING_DOTENV_PROBE=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("SCOUTING_DOTENV_PROBE", "")
	os.Unsetenv("SCOUTING_DOTENV_PROBE")

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if got := os.Getenv("SCOUTING_DOTENV_PROBE"); got != "from-file" {
		t.Fatalf("unexpected env value: %q", got)
	}
}
