package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/Dosada05/cartola-league/brackets"
	"github.com/Dosada05/cartola-league/cache"
	"github.com/Dosada05/cartola-league/cartola"
	"github.com/Dosada05/cartola-league/config"
	"github.com/Dosada05/cartola-league/db"
	"github.com/Dosada05/cartola-league/handlers"
	"github.com/Dosada05/cartola-league/repositories"
	api "github.com/Dosada05/cartola-league/routes"
	"github.com/Dosada05/cartola-league/services"
	"github.com/Dosada05/cartola-league/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Exports are optional: without bucket credentials the endpoints
	// report 501 and everything else keeps working.
	var exportService *services.ExportService
	if cfg.R2Configured() {
		uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		exportService = services.NewExportService(uploader, logger)
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("R2 credentials not set, exports disabled")
	}

	wsHub := brackets.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	settings, err := services.LoadStaticSettings(cfg.LeaguesFile)
	if err != nil {
		logger.Error("failed to load league registry", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("league registry loaded", slog.String("file", cfg.LeaguesFile))

	apiClient := cartola.NewClient(cfg.CartolaAPIBaseURL, cfg.CartolaRequestsPerMinute, logger)
	sessions := services.NewLeagueSessions(func(leagueID string) services.RankingSource {
		return cache.NewRankingCache(leagueID, apiClient, logger)
	})

	adjustmentRepo := repositories.NewPostgresAdjustmentRepository(dbConn)
	snapshotRepo := repositories.NewPostgresLedgerSnapshotRepository(dbConn)
	logger.Info("repositories initialized")

	bracketService := services.NewBracketService(settings, apiClient, sessions, wsHub, logger)
	ledgerService := services.NewLedgerService(
		settings,
		apiClient,
		apiClient,
		sessions,
		bracketService,
		snapshotRepo,
		adjustmentRepo,
		wsHub,
		logger,
	)
	monthlyService := services.NewMonthlyService(settings, apiClient, sessions, logger)
	logger.Info("services initialized")

	ledgerHandler := handlers.NewLedgerHandler(ledgerService, exportService)
	bracketHandler := handlers.NewBracketHandler(bracketService, exportService)
	monthlyHandler := handlers.NewMonthlyHandler(monthlyService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, logger)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(router, ledgerHandler, bracketHandler, monthlyHandler, webSocketHandler)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
