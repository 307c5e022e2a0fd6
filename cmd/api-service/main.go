package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cuongbtq/jobsearch/internal/api/handler"
	"github.com/cuongbtq/jobsearch/internal/api/router"
	"github.com/cuongbtq/jobsearch/internal/config"
	"github.com/cuongbtq/jobsearch/internal/events"
	"github.com/cuongbtq/jobsearch/internal/service"
	"github.com/cuongbtq/jobsearch/internal/store"
	"github.com/cuongbtq/jobsearch/internal/upload"
	"github.com/cuongbtq/jobsearch/internal/worker"
	"github.com/cuongbtq/jobsearch/shared/logger"
	"github.com/cuongbtq/jobsearch/shared/postgresql"
	"github.com/cuongbtq/jobsearch/shared/rabbitmq"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const serviceName = "jobsearch-api"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or flags")
	}

	defaultConfigPath := os.Getenv("API_SERVICE_CONFIG_PATH")
	if defaultConfigPath == "" {
		defaultConfigPath = "configs/api-service/config.yaml"
	}
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	appLogger, err := initLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	appLogger.Info("Starting API service",
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("environment", cfg.App.Environment),
		slog.String("seed_source", cfg.Seed.Source),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seed, err := loadSeed(ctx, cfg, appLogger.Logger)
	if err != nil {
		return fmt.Errorf("failed to load seed data: %w", err)
	}

	st, err := store.New(seed)
	if err != nil {
		return fmt.Errorf("failed to build store: %w", err)
	}

	appLogger.Info("Store initialized",
		slog.Int("jobs", st.Jobs.Len()),
		slog.Int("applications", st.Applications.Len()),
		slog.Int("resumes", st.Resumes.Len()),
		slog.Int("job_alerts", st.JobAlerts.Len()),
	)

	opts := service.Options{
		Logger:  appLogger.Logger,
		Latency: latencyFromConfig(&cfg.Latency),
		Upload: upload.Options{
			Step:     cfg.Upload.ProgressStep,
			Interval: cfg.Upload.TickInterval,
		},
	}

	deps := &handler.Dependencies{
		Logger:      appLogger.Logger,
		ServiceName: serviceName,
	}

	var (
		rabbitClient *rabbitmq.Client
		alertWorker  *worker.Worker
	)
	if cfg.RabbitMQ.Enabled {
		rabbitClient, err = initRabbitMQ(ctx, &cfg.RabbitMQ, appLogger.Logger)
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ: %w", err)
		}
		defer rabbitClient.Close()

		appLogger.Info("RabbitMQ connection established")
		opts.Publisher = events.NewRabbitPublisher(rabbitClient, appLogger.Logger)
		deps.Broker = rabbitClient
	}

	services := service.New(st, opts)
	deps.Services = services

	if rabbitClient != nil {
		alertWorker = worker.NewWorker(&worker.Config{
			Logger:        appLogger.Logger,
			Consumer:      rabbitClient,
			Alerts:        services.JobAlerts,
			Concurrency:   cfg.Worker.Concurrency,
			PrefetchCount: cfg.Worker.PrefetchCount,
			JobTimeout:    cfg.Worker.JobTimeout,
		})
		if err := alertWorker.Start(ctx); err != nil {
			return fmt.Errorf("failed to start alert worker: %w", err)
		}
	}

	r := initRouter(cfg.App.Environment, deps)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	appLogger.Info("Starting HTTP server",
		slog.String("address", addr),
		slog.Duration("read_timeout", cfg.Server.ReadTimeout),
		slog.Duration("write_timeout", cfg.Server.WriteTimeout),
	)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		appLogger.Error("Server failed to start", slog.Any("error", err))
		return err
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", slog.Any("error", err))
		return err
	}

	if alertWorker != nil {
		stopWorker(alertWorker, cfg.Worker.ShutdownTimeout, appLogger.Logger)
	}

	appLogger.Info("Server shutdown complete")
	return nil
}

// initLogger initializes and configures the application logger
func initLogger(cfg *config.LoggingConfig) (*logger.Logger, error) {
	loggerCfg := &logger.Config{
		Level:        cfg.Level,
		Format:       cfg.Format,
		Output:       cfg.Output,
		EnableSource: cfg.EnableCaller,
		TimeFormat:   time.RFC3339,
	}

	return logger.New(loggerCfg)
}

// loadSeed reads the initial collections from the configured source.
// The database connection is only needed while loading.
func loadSeed(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*store.Seed, error) {
	if cfg.Seed.Source != config.SeedSourcePostgres {
		return store.NewFileSeeder(cfg.Seed.Path).Load(ctx)
	}

	dbClient, err := initPostgreSQL(ctx, &cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	defer dbClient.Close()

	logger.Info("Database connection established")
	return store.NewPostgresSeeder(dbClient).Load(ctx)
}

// initPostgreSQL initializes the PostgreSQL database client
func initPostgreSQL(ctx context.Context, cfg *config.DatabaseConfig, logger *slog.Logger) (*postgresql.Client, error) {
	dbConfig := &postgresql.Config{
		Host:            cfg.Host,
		Port:            cfg.Port,
		User:            cfg.User,
		Password:        cfg.Password,
		Database:        cfg.Database,
		SSLMode:         cfg.SSLMode,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
	}

	return postgresql.NewClient(ctx, dbConfig, logger)
}

// initRabbitMQ initializes the RabbitMQ client
func initRabbitMQ(ctx context.Context, cfg *config.RabbitMQConfig, logger *slog.Logger) (*rabbitmq.Client, error) {
	rabbitConfig := &rabbitmq.Config{
		Host:               cfg.Host,
		Port:               cfg.Port,
		User:               cfg.User,
		Password:           cfg.Password,
		VHost:              cfg.VHost,
		ExchangeName:       cfg.Exchange.Name,
		ExchangeType:       cfg.Exchange.Type,
		ExchangeDurable:    cfg.Exchange.Durable,
		ExchangeAutoDelete: cfg.Exchange.AutoDelete,
		QueueName:          cfg.Queue.Name,
		QueueDurable:       cfg.Queue.Durable,
		QueueAutoDelete:    cfg.Queue.AutoDelete,
		QueueExclusive:     cfg.Queue.Exclusive,
		RoutingKey:         cfg.RoutingKey,
		RetryAttempts:      cfg.Connection.RetryAttempts,
		RetryInterval:      cfg.Connection.RetryInterval,
		Heartbeat:          cfg.Connection.Heartbeat,
		ConnectionTimeout:  cfg.Connection.ConnectionTimeout,
		PublishRetries:     cfg.Publish.RetryAttempts,
		PublishRetryDelay:  cfg.Publish.RetryInterval,
		PublishBackoffMult: cfg.Publish.BackoffMultiplier,
	}

	return rabbitmq.NewClient(ctx, rabbitConfig, logger)
}

// latencyFromConfig resolves configured delays; ApplyDefaults has filled every field
func latencyFromConfig(cfg *config.LatencyConfig) service.Latency {
	latency := service.DefaultLatency()
	set := func(dst *time.Duration, src *time.Duration) {
		if src != nil {
			*dst = *src
		}
	}

	set(&latency.GetAll, cfg.GetAll)
	set(&latency.GetByID, cfg.GetByID)
	set(&latency.Create, cfg.Create)
	set(&latency.Update, cfg.Update)
	set(&latency.Delete, cfg.Delete)
	return latency
}

// stopWorker waits for in-flight deliveries, giving up after timeout
func stopWorker(w *worker.Worker, timeout time.Duration, logger *slog.Logger) {
	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("Alert worker stopped")
	case <-time.After(timeout):
		logger.Warn("Alert worker did not stop in time", slog.Duration("timeout", timeout))
	}
}

// initRouter initializes the Gin router with all routes and middleware
func initRouter(environment string, deps *handler.Dependencies) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	return router.SetupRouter(deps)
}
