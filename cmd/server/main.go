package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/user/integration-board/internal/adapter/api"
	"github.com/user/integration-board/internal/adapter/api/middleware"
	"github.com/user/integration-board/internal/adapter/metrics"
	"github.com/user/integration-board/internal/adapter/repository/postgres"
	"github.com/user/integration-board/internal/adapter/repository/sheets"
	"github.com/user/integration-board/internal/adapter/repository/sqlite"
	"github.com/user/integration-board/internal/domain"
	"github.com/user/integration-board/internal/pkg/catalog"
	"github.com/user/integration-board/internal/pkg/config"
	"github.com/user/integration-board/internal/pkg/logger"
	"github.com/user/integration-board/internal/usecase"

	_ "github.com/lib/pq" // Keep for postgres driver
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logger.New(cfg.LogLevel)
	slog.SetDefault(logger)

	m := metrics.NewLeaderboardMetrics()
	cat := catalog.New(cfg.Integrations)

	// --- Start Metrics Server ---
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())

	metricsServer := &http.Server{
		Addr:    cfg.MetricsAddr,
		Handler: metricsMux,
	}

	go func() {
		logger.Info("starting metrics server", "addr", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	// --- Graceful Shutdown Context ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage Backend Selection ---
	var (
		repo       domain.SubmissionRepository
		closeStore func() error
	)

	switch cfg.StorageBackend {
	case config.BackendSQLite:
		r, err := sqlite.NewSubmissionRepository(cfg.SQLitePath, logger)
		if err != nil {
			logger.Error("failed to open sqlite store", "error", err, "path", cfg.SQLitePath)
			os.Exit(1)
		}
		repo = r
		closeStore = r.Close

	case config.BackendPostgres:
		db, err := sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		r, err := postgres.NewSubmissionRepository(db, logger)
		if err != nil {
			logger.Error("failed to initialize postgres store", "error", err)
			os.Exit(1)
		}
		repo = r
		closeStore = db.Close

	case config.BackendSheets:
		r, err := sheets.NewSubmissionRepository(ctx, cfg.SheetsSpreadsheetID, cfg.SheetsWorksheet, cfg.SheetsCredentialsFile, logger)
		if err != nil {
			logger.Error("failed to connect to google sheets", "error", err)
			os.Exit(1)
		}
		repo = r
	}

	if closeStore != nil {
		defer closeStore()
	}

	logger.Info("storage backend ready", "backend", cfg.StorageBackend)

	// --- Initialize Use Cases and Router ---
	submissionUseCase := usecase.NewSubmissionUseCase(repo, m, logger)
	overviewUseCase := usecase.NewOverviewUseCase(repo, logger)

	writeLimiter := rate.NewLimiter(rate.Limit(cfg.WriteRPS), cfg.WriteBurst)
	router := api.NewRouter(logger, cat, submissionUseCase, overviewUseCase, writeLimiter)

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      middleware.Logging(logger)(router),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		logger.Info("starting server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			stop() // Trigger shutdown on server error
		}
	}()

	// --- Wait for shutdown signal ---
	<-ctx.Done()
	logger.Info("shutting down servers...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown failed", "error", err)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	logger.Info("servers shut down gracefully")
}
