package db

import (
	"fmt"
	"log/slog"

	"stackpulse/internal/config"
	"stackpulse/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 连接数据库并迁移表结构，结果保存在 DB
func Init(cfg config.Database) error {
	conn, err := Open(cfg)
	if err != nil {
		return err
	}
	slog.Info("Database connection established", slog.String("driver", cfg.Driver))

	if err := Migrate(conn); err != nil {
		return err
	}
	slog.Info("Database migration completed")

	DB = conn
	return nil
}

// Open 按驱动打开 gorm 连接
func Open(cfg config.Database) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		// sqlite 只允许一个写连接，同时打开外键约束让级联删除生效
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	return conn, nil
}

// Migrate 自动迁移语料相关的表
func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.Tag{},
		&models.Question{},
		&models.Answer{},
		&models.QuestionComment{},
		&models.AnswerComment{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
