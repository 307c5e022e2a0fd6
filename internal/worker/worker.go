// Package worker consumes entity change events from RabbitMQ and evaluates
// new and updated jobs against the active job alerts.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cuongbtq/jobsearch/internal/domain"
	workerdomain "github.com/cuongbtq/jobsearch/internal/worker/domain"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer is the subset of the RabbitMQ client the worker needs
type Consumer interface {
	Qos(prefetchCount int) error
	Consume(consumerTag string) (<-chan amqp.Delivery, error)
}

// AlertSource returns the alerts that are currently active
type AlertSource interface {
	Active(ctx context.Context) ([]domain.JobAlert, error)
}

// MatchFunc is called for every alert a job satisfies
type MatchFunc func(ctx context.Context, alert domain.JobAlert, job domain.Job)

// Config holds worker configuration
type Config struct {
	Logger        *slog.Logger
	Consumer      Consumer
	Alerts        AlertSource
	OnMatch       MatchFunc
	Concurrency   int
	PrefetchCount int
	JobTimeout    time.Duration
}

// Worker dispatches deliveries to a fixed pool of goroutines
type Worker struct {
	logger        *slog.Logger
	consumer      Consumer
	alerts        AlertSource
	onMatch       MatchFunc
	workerID      string
	concurrency   int
	prefetchCount int
	jobTimeout    time.Duration
	messages      chan *workerdomain.EventMessage
	wg            sync.WaitGroup
	stopChan      chan struct{}
	stopOnce      sync.Once
}

// NewWorker creates a new worker instance
func NewWorker(cfg *Config) *Worker {
	concurrency := max(cfg.Concurrency, 1)
	prefetch := cfg.PrefetchCount
	if prefetch <= 0 {
		prefetch = concurrency
	}

	w := &Worker{
		logger:        cfg.Logger,
		consumer:      cfg.Consumer,
		alerts:        cfg.Alerts,
		onMatch:       cfg.OnMatch,
		workerID:      "alert-worker-" + uuid.NewString(),
		concurrency:   concurrency,
		prefetchCount: prefetch,
		jobTimeout:    cfg.JobTimeout,
		messages:      make(chan *workerdomain.EventMessage),
		stopChan:      make(chan struct{}),
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	if w.onMatch == nil {
		w.onMatch = w.logMatch
	}
	return w
}

// Start subscribes to the queue and spawns the pool. It returns once
// consumption has begun; processing continues until Stop or ctx is done.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Duration("job_timeout", w.jobTimeout),
	)

	deliveries, err := w.setupConsumer()
	if err != nil {
		return fmt.Errorf("failed to start worker: %w", err)
	}

	w.spawnWorkerPool(ctx)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.startMessageDispatcher(ctx, deliveries)
	}()

	return nil
}

// Stop gracefully stops the worker and waits for in-flight messages
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		w.logger.Info("Stopping worker...")
		close(w.stopChan)
	})
	w.wg.Wait()
	w.logger.Info("Worker stopped")
}

func (w *Worker) logMatch(_ context.Context, alert domain.JobAlert, job domain.Job) {
	w.logger.Info("Job matches alert",
		slog.Int("alert_id", alert.ID),
		slog.String("frequency", string(alert.Frequency)),
		slog.Int("job_id", job.ID),
		slog.String("title", job.Title),
		slog.String("company", job.Company),
	)
}
