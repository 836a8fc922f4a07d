package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"stackpulse/internal/utils"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config 应用配置，启动时从 .env 与环境变量读取一次
type Config struct {
	Port     string
	LogLevel slog.Level
	Database Database
	Import   Import
	// CacheTTL 分析接口响应缓存时间，0 表示不缓存
	CacheTTL time.Duration
}

type Database struct {
	Driver string
	DSN    string
}

type Import struct {
	// ArchivePath 可以是 zip 包，也可以是存放 *.json 的目录
	ArchivePath string
	// Threshold 语料达到该数量后不再导入
	Threshold int
}

// Load 加载 .env（可选）并解析环境变量
func Load() Config {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, reading config from environment")
	}

	cfg := Config{
		Port:     getenv("PORT", "8080"),
		LogLevel: parseLevel(getenv("LOG_LEVEL", "info")),
		Database: Database{
			Driver: strings.ToLower(getenv("DB_DRIVER", DriverPostgres)),
			DSN:    os.Getenv("DATABASE_URL"),
		},
		Import: Import{
			ArchivePath: getenv("IMPORT_ARCHIVE_PATH", "Sample_SO_data.zip"),
			Threshold:   1000,
		},
		CacheTTL: 5 * time.Minute,
	}

	if cfg.Database.DSN == "" {
		// Fallback for local dev if not set
		if cfg.Database.Driver == DriverSQLite {
			cfg.Database.DSN = "stackpulse.db"
		} else {
			cfg.Database.DSN = "host=localhost user=postgres password=postgres dbname=stackpulse port=5432 sslmode=disable TimeZone=UTC"
		}
	}

	if v := os.Getenv("IMPORT_THRESHOLD"); v != "" {
		if n, err := utils.ParseOptionalInt(v); err == nil && n != nil && *n >= 0 {
			cfg.Import.Threshold = *n
		} else {
			slog.Warn("Invalid IMPORT_THRESHOLD, using default",
				slog.String("value", v), slog.Int("default", cfg.Import.Threshold))
		}
	}

	if v := os.Getenv("QUERY_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.CacheTTL = d
		} else {
			slog.Warn("Invalid QUERY_CACHE_TTL, using default",
				slog.String("value", v), slog.Duration("default", cfg.CacheTTL))
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
