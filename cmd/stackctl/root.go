package main

import (
	"stackpulse/internal/config"
	"stackpulse/internal/db"
	"stackpulse/internal/logging"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "stackctl",
	Short: "Maintenance commands for the StackPulse corpus",
	Long: `stackctl runs one-off corpus maintenance against the database configured
through the same environment variables as the server (DB_DRIVER, DATABASE_URL, ...).`,
	SilenceUsage: true,
}

// openCorpus 读取配置、初始化日志并连接数据库
func openCorpus() (config.Config, *gorm.DB, error) {
	cfg := config.Load()
	logging.InitLogger(cfg.LogLevel)
	if err := db.Init(cfg.Database); err != nil {
		return cfg, nil, err
	}
	return cfg, db.DB, nil
}
