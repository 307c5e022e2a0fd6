package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/jobsearch/internal/worker/domain"
)

// spawnWorkerPool spawns N worker goroutines based on concurrency configuration
func (w *Worker) spawnWorkerPool(ctx context.Context) {
	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.workerLoop(ctx, i)
	}

	w.logger.Info("Worker pool spawned",
		slog.Int("worker_count", w.concurrency),
	)
}

// workerLoop processes messages until the worker stops
func (w *Worker) workerLoop(ctx context.Context, workerNum int) {
	defer w.wg.Done()

	workerName := fmt.Sprintf("%s-%d", w.workerID, workerNum)
	w.logger.Debug("Worker goroutine started",
		slog.String("worker_name", workerName),
	)

	for {
		select {
		case <-w.stopChan:
			return

		case <-ctx.Done():
			return

		case msg := <-w.messages:
			w.handleMessage(ctx, workerName, msg)
		}
	}
}

// handleMessage processes msg and settles its delivery
func (w *Worker) handleMessage(ctx context.Context, workerName string, msg *domain.EventMessage) {
	logger := w.logger.With(
		slog.String("worker_name", workerName),
		slog.String("type", msg.Event.Type),
		slog.Int("entity_id", msg.Event.EntityID),
	)

	_, err := w.processEvent(ctx, msg.Event)
	if err == nil || errors.Is(err, domain.ErrUnhandledEvent) {
		if ackErr := msg.Delivery.Ack(false); ackErr != nil {
			logger.Error("Failed to ACK message", slog.String("error", ackErr.Error()))
		}
		return
	}

	requeue := shouldRequeue(err)
	logger.Error("Event processing failed",
		slog.String("error", err.Error()),
		slog.Bool("requeue", requeue),
	)

	if nackErr := msg.Delivery.Nack(false, requeue); nackErr != nil {
		logger.Error("Failed to NACK message", slog.String("error", nackErr.Error()))
	}
}

// shouldRequeue requeues only errors marked retryable
func shouldRequeue(err error) bool {
	if errors.Is(err, domain.ErrInvalidPayload) {
		return false
	}

	var retryableErr *domain.RetryableError
	return errors.As(err, &retryableErr)
}
