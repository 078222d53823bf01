package main

import (
	"context"
	"debt-ledger/internal/api"
	mw "debt-ledger/internal/api/middleware"
	"debt-ledger/internal/batch"
	"debt-ledger/internal/config"
	"debt-ledger/internal/domain/collection"
	"debt-ledger/internal/domain/session"
	"debt-ledger/internal/event"
	"debt-ledger/internal/infrastructure/auth"
	"debt-ledger/internal/infrastructure/database/postgres"
	"debt-ledger/internal/infrastructure/genai"
	"debt-ledger/internal/workspace"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

type application struct {
	workspace *workspace.Workspace
	holder    *session.Holder
	authSvc   *auth.Service
	composer  *collection.Composer
	detach    func()
}

func runServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	dbPool, err := initializeDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeDatabase(dbPool, logger)

	if cfg.Database.MigrateOnStart {
		if _, err := postgres.ApplyMigrations(ctx, dbPool, logger); err != nil {
			logger.Error("Failed to apply migrations on start", "error", err)
			return err
		}
	}

	redisClient, err := initializeRedisClient(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRedisClient(redisClient, logger)

	rabbitConn, publisher := initializePublisher(cfg, logger)
	if rabbitConn != nil {
		defer rabbitConn.Close()
	}
	if closer, ok := publisher.(io.Closer); ok {
		defer closer.Close()
	}

	app := initializeServices(ctx, cfg, dbPool, redisClient, publisher, logger)
	defer app.detach()
	defer app.holder.Stop()

	var limiterStore redis.Cmdable
	if redisClient != nil {
		limiterStore = redisClient
	}
	rateLimiter := mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, limiterStore, logger)
	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	defer stopCleanup()
	rateLimiter.StartCleanup(cleanupCtx)

	snapshotJob := batch.NewOverdueSnapshotJob(app.workspace, logger)
	cronScheduler := startBatchJobs(cfg, logger, snapshotJob)

	router := api.SetupRouter(api.Dependencies{
		Ledger:      app.workspace,
		Sessions:    app.holder,
		Verifier:    app.authSvc,
		Composer:    app.composer,
		Schema:      postgres.Schema,
		RateLimiter: rateLimiter,
	}, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	return handleShutdown(srv, cronScheduler, shutdownChan, serverErrors, logger)
}

func initializeDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	logger.Info("Initializing database connection pool...")
	dbPool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database connection pool", "error", err)
		return nil, err
	}
	return dbPool, nil
}

func closeDatabase(dbPool *pgxpool.Pool, logger *slog.Logger) {
	logger.Info("Closing database connection pool...")
	dbPool.Close()
}

// initializeRedisClient returns nil when Redis is disabled.
func initializeRedisClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		logger.Info("Redis disabled, sessions and rate limits stay in process.")
		return nil, nil
	}
	if cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("redis address (addr) is not configured")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if status := rdb.Ping(pingCtx); status.Err() != nil {
		logger.Error("Failed to connect to Redis", "error", status.Err(), "addr", cfg.Redis.Addr)
		_ = rdb.Close()
		return nil, status.Err()
	}

	logger.Info("Redis client connected successfully.", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
	return rdb, nil
}

func closeRedisClient(redisClient *redis.Client, logger *slog.Logger) {
	if redisClient == nil {
		return
	}
	logger.Info("Closing Redis client connection...")
	if err := redisClient.Close(); err != nil {
		logger.Error("Failed to close Redis client connection gracefully", "error", err)
	}
}

// initializePublisher falls back to the no-op publisher when RabbitMQ is disabled or unreachable.
func initializePublisher(cfg *config.Config, logger *slog.Logger) (*amqp.Connection, event.EventPublisher) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ disabled, ledger events are only logged.")
		return nil, event.NewNoopEventPublisher(logger)
	}

	conn, err := connectRabbitMQ(cfg.RabbitMQ.URI(), logger)
	if err != nil {
		logger.Error("RabbitMQ unavailable, ledger events are only logged", "error", err)
		return nil, event.NewNoopEventPublisher(logger)
	}

	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.RabbitMQ.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to set up RabbitMQ publisher", "error", err)
		_ = conn.Close()
		return nil, event.NewNoopEventPublisher(logger)
	}
	return conn, publisher
}

func connectRabbitMQ(uri string, logger *slog.Logger) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	retryCount := 5
	for i := 1; i <= retryCount; i++ {
		conn, err = amqp.Dial(uri)
		if err == nil {
			logger.Info("Successfully connected to RabbitMQ")

			go func() {
				blockChan := conn.NotifyBlocked(make(chan amqp.Blocking))
				closeChan := conn.NotifyClose(make(chan *amqp.Error))

				select {
				case b := <-blockChan:
					logger.Warn("RabbitMQ Connection Blocked", "reason", b.Reason)
				case e := <-closeChan:
					logger.Error("RabbitMQ Connection Closed", slog.Any("error", e))
				}
			}()

			return conn, nil
		}
		logger.Warn("Failed to connect to RabbitMQ, retrying...",
			slog.Int("attempt", i),
			slog.Int("max_attempts", retryCount),
			slog.Any("error", err),
		)
		time.Sleep(time.Duration(i*2) * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", retryCount, err)
}

func initializeServices(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, redisClient *redis.Client, publisher event.EventPublisher, logger *slog.Logger) *application {
	logger.Info("Initializing application components...")

	var sessionStore auth.SessionStore
	if redisClient != nil {
		sessionStore = auth.NewRedisSessionStore(redisClient)
	}
	authSvc := auth.NewService(postgres.NewUserRepository(dbPool, logger), sessionStore, cfg.Server.Auth, logger)
	holder := session.NewHolder(authSvc, logger)

	ws := workspace.New(
		postgres.NewCustomerRepository(dbPool, logger),
		postgres.NewDebtRepository(dbPool, logger),
		publisher,
		cfg.Locale.Location(),
		logger,
	)
	detach := ws.Attach(holder)

	if err := holder.Start(ctx); err != nil {
		logger.Warn("Starting signed out", "error", err)
	}

	var generator collection.TextGenerator
	if cfg.GenAI.Enabled {
		g, err := genai.NewGenerator(ctx, cfg.GenAI, logger)
		if err != nil {
			logger.Warn("Text generation unavailable, collection messages use the fixed template", "error", err)
		} else {
			generator = g
		}
	}

	return &application{
		workspace: ws,
		holder:    holder,
		authSvc:   authSvc,
		composer:  collection.NewComposer(generator, logger),
		detach:    detach,
	}
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

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) error {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			cronScheduler.Stop()
			return err
		}
		triggerReason = "server exited"
		logger.Info("Server goroutine finished before signal.")
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

	if triggerReason != "server exited" {
		select {
		case err := <-serverErrors:
			if err != nil {
				logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
			}
		case <-time.After(5 * time.Second):
			logger.Warn("Timed out waiting for server goroutine confirmation.")
		}
	}

	logger.Info("Application shutdown process complete.")
	return nil
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, snapshotJob *batch.OverdueSnapshotJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.Batch.OverdueSnapshotSchedule
	if scheduleSpec == "" {
		scheduleSpec = "*/15 * * * *"
		logger.Warn("Overdue snapshot schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := time.Duration(cfg.Batch.OverdueSnapshotTimeout) * time.Second
	if jobTimeout <= 0 {
		jobTimeout = 30 * time.Second
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "OverdueSnapshot")
		jobLogger.Info("Cron triggered: Running overdue snapshot job.")

		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if runErr := snapshotJob.Run(ctx); runErr != nil {
			jobLogger.Error("Overdue snapshot job finished with error", slog.Any("error", runErr))
		}
	}))
	if err != nil {
		logger.Error("Failed to schedule overdue snapshot job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled overdue snapshot job", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}
