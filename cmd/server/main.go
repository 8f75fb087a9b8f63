package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phuslu/log"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/api"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/backup"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/config"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/database"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/logging"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/repository"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/service"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	// Open database connection
	db, err := database.Open(context.Background(), cfg.Database.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	logger.Info().Str("path", cfg.Database.Path).Str("version", version.Version).Msg("connected to database")

	// Create repositories
	itemRepo := repository.NewLineItemRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Create services
	lock := service.NewSessionLock()
	projectService := service.NewProjectService(db, itemRepo, settingsRepo, lock, logger)
	analysisService := service.NewAnalysisService(projectService)
	services := api.Services{
		System:   service.NewSystemService(db),
		Project:  projectService,
		LineItem: service.NewLineItemService(db, itemRepo, lock, logger),
		Analysis: analysisService,
		Export:   service.NewExportService(analysisService),
	}

	// Scheduled backups
	if cfg.Backup.Dir != "" {
		manager, err := backup.NewManager(backup.Options{
			Dir:  cfg.Backup.Dir,
			Key:  cfg.Backup.Key,
			Keep: cfg.Backup.Keep,
		}, projectService, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to configure backups")
		}
		stop, err := manager.Start(cfg.Backup.Schedule)
		if err != nil {
			logger.Fatal().Err(err).Str("schedule", cfg.Backup.Schedule).Msg("failed to schedule backups")
		}
		defer stop()
	}

	// Create router
	router := api.NewRouter(services, cfg, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	logger.Info().Msg("server exited")
}
