package main

import (
	"context"
	"log/slog"
	"os"

	"stackpulse/internal/config"
	"stackpulse/internal/db"
	"stackpulse/internal/logging"
	"stackpulse/internal/middleware"
	"stackpulse/internal/router"
	"stackpulse/internal/services"
	"stackpulse/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logging.InitLogger(cfg.LogLevel)

	// Initialize Database
	if err := db.Init(cfg.Database); err != nil {
		slog.Error("Database initialization failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 启动时导入语料，失败则直接退出
	importer := services.NewImporter(db.DB, cfg.Import.Threshold)
	if _, err := importer.RunPath(context.Background(), cfg.Import.ArchivePath); err != nil {
		slog.Error("Corpus import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize Gin
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())

	router.RegisterRoutes(r, db.DB, utils.GetCache(), cfg.CacheTTL)

	slog.Info("StackPulse server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("Server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
