package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "DATABASE_URL", "IMPORT_ARCHIVE_PATH", "IMPORT_THRESHOLD", "LOG_LEVEL", "QUERY_CACHE_TTL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" || cfg.Database.Driver != DriverPostgres || cfg.Import.ArchivePath != "Sample_SO_data.zip" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Import.Threshold != 1000 || cfg.CacheTTL != 5*time.Minute || cfg.LogLevel != slog.LevelInfo {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Database.DSN == "" {
		t.Error("postgres DSN should fall back to a local default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("IMPORT_ARCHIVE_PATH", "/data/threads")
	t.Setenv("IMPORT_THRESHOLD", "50")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("QUERY_CACHE_TTL", "0")

	cfg := Load()
	if cfg.Port != "9090" || cfg.Database.Driver != DriverSQLite || cfg.Database.DSN != "stackpulse.db" {
		t.Errorf("unexpected database config: %+v", cfg)
	}
	if cfg.Import.ArchivePath != "/data/threads" || cfg.Import.Threshold != 50 {
		t.Errorf("unexpected import config: %+v", cfg.Import)
	}
	if cfg.LogLevel != slog.LevelDebug || cfg.CacheTTL != 0 {
		t.Errorf("unexpected level/ttl: %v %v", cfg.LogLevel, cfg.CacheTTL)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("IMPORT_THRESHOLD", "many")
	t.Setenv("QUERY_CACHE_TTL", "soon")
	t.Setenv("LOG_LEVEL", "loud")

	cfg := Load()
	if cfg.Import.Threshold != 1000 || cfg.CacheTTL != 5*time.Minute || cfg.LogLevel != slog.LevelInfo {
		t.Errorf("invalid values should fall back to defaults: %+v", cfg)
	}
}
