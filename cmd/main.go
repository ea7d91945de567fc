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

	_ "customers-api/docs"
	"customers-api/internal/api"
	"customers-api/internal/api/handler"
	"customers-api/internal/batch"
	"customers-api/internal/config"
	"customers-api/internal/domain/customer"
	"customers-api/internal/event"
	"customers-api/internal/infrastructure/database/memory"
	"customers-api/internal/infrastructure/database/postgres"
	"customers-api/internal/infrastructure/github"
	"customers-api/internal/infrastructure/logging"
	"customers-api/internal/infrastructure/tracing"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const (
	driverPostgres = "postgres"
	driverMemory   = "memory"
)

// storage is the repository chosen by database.driver together with what
// the health check, the stats job and shutdown need from it.
type storage struct {
	repo    customer.CustomerRepository
	counter batch.CustomerCounter
	pinger  handler.Pinger
	close   func()
}

// @title Customers API
// @version 1.0
// @description Customer records validated against the GitHub user directory.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, logger := initializeApp()

	shutdownTracing := initializeTracing(cfg, logger)
	defer shutdownTracing()

	store, err := initializeStorage(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer store.close()

	publisher, closePublisher := initializePublisher(cfg, logger)
	defer closePublisher()

	customerService := initializeServices(cfg, store, publisher, logger)
	statsJob := batch.NewCustomerStatsJob(store.counter, logger)

	cronScheduler := startBatchJobs(cfg, logger, statsJob)
	router, stopRouter := api.SetupRouter(customerService, store.pinger, cfg, logger)
	defer stopRouter()

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	envErr := godotenv.Load()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Logger)
	if envErr != nil {
		logger.Debug("No .env file loaded", "reason", envErr.Error())
	}
	logger.Info("Application starting...", "database_driver", cfg.Database.Driver)

	return cfg, logger
}

func initializeTracing(cfg *config.Config, logger *slog.Logger) func() {
	shutdown, err := tracing.Setup(context.Background(), cfg.Tracing, logger)
	if err != nil {
		logger.Error("Failed to initialize tracing, continuing without it", "error", err)
		return func() {}
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			logger.Warn("Tracer provider shutdown failed", "error", err)
		}
	}
}

func initializeStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storage, error) {
	switch cfg.Database.Driver {
	case driverMemory:
		logger.Warn("Using in-memory customer storage; data is lost on restart")
		repo := memory.NewCustomerRepository(logger)
		return &storage{repo: repo, counter: repo, close: func() {}}, nil

	case driverPostgres, "":
		logger.Info("Initializing database connection pool...")
		dbPool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		repo := postgres.NewCustomerRepository(dbPool, logger)
		if err := repo.EnsureSchema(ctx); err != nil {
			dbPool.Close()
			return nil, err
		}
		return &storage{
			repo:    repo,
			counter: repo,
			pinger:  dbPool,
			close: func() {
				logger.Info("Closing database connection pool...")
				dbPool.Close()
			},
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// initializePublisher falls back to a no-op publisher when RabbitMQ is
// disabled or unreachable; customer writes never depend on the broker.
func initializePublisher(cfg *config.Config, logger *slog.Logger) (event.EventPublisher, func()) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ disabled, customer events will not be published")
		return event.NopPublisher{}, func() {}
	}

	conn, err := event.Dial(cfg.RabbitMQ.URL())
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ, customer events will not be published", "error", err)
		return event.NopPublisher{}, func() {}
	}

	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.RabbitMQ.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to create RabbitMQ publisher", "error", err)
		_ = conn.Close()
		return event.NopPublisher{}, func() {}
	}

	return publisher, func() {
		logger.Info("Closing RabbitMQ connection...")
		if err := conn.Close(); err != nil {
			logger.Warn("RabbitMQ connection close failed", "error", err)
		}
	}
}

func initializeServices(cfg *config.Config, store *storage, publisher event.EventPublisher, logger *slog.Logger) customer.CustomerService {
	logger.Info("Initializing application components...")
	githubClient := github.NewClient(cfg.GitHub, logger)
	validator := customer.NewValidator(githubClient, logger, customer.WithMinimumAge(cfg.Validation.MinimumAge))
	return customer.NewCustomerService(store.repo, validator, publisher, logger)
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		triggerReason = "server exited"
		logger.Info("Server goroutine finished before signal.", "error", err)
	}

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	logger.Info("Waiting for server goroutine to confirm exit...")
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		} else {
			logger.Info("Server goroutine confirmed exit.")
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}

	logger.Info("Application shutdown process complete.")
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, statsJob *batch.CustomerStatsJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.Batch.CustomerStatsSchedule
	if scheduleSpec == "" {
		scheduleSpec = "*/5 * * * *"
		logger.Warn("Customer stats schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := cfg.Batch.CustomerStatsTimeout
	if jobTimeout <= 0 {
		jobTimeout = 30 * time.Second
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "CustomerStats")

		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if runErr := statsJob.Run(ctx); runErr != nil {
			jobLogger.Error("Customer stats job finished with error", slog.Any("error", runErr))
		}
	}))
	if err != nil {
		logger.Error("Failed to schedule customer stats job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled customer stats job", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}

func setupLogger(cfg config.LoggerConfig) *slog.Logger {
	return logging.NewLogger(cfg)
}
