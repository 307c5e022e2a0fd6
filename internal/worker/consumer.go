package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/jobsearch/internal/events"
	"github.com/cuongbtq/jobsearch/internal/worker/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// setupConsumer sets QoS and starts consuming with the worker id as tag
func (w *Worker) setupConsumer() (<-chan amqp.Delivery, error) {
	if err := w.consumer.Qos(w.prefetchCount); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	w.logger.Info("RabbitMQ QoS configured",
		slog.Int("prefetch_count", w.prefetchCount),
	)

	deliveries, err := w.consumer.Consume(w.workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	w.logger.Info("RabbitMQ consumer started",
		slog.String("consumer_tag", w.workerID),
	)

	return deliveries, nil
}

// startMessageDispatcher decodes deliveries and hands them to the pool
func (w *Worker) startMessageDispatcher(ctx context.Context, deliveries <-chan amqp.Delivery) {
	w.logger.Info("Message dispatcher started",
		slog.String("worker_id", w.workerID),
	)

	for {
		select {
		case <-w.stopChan:
			w.logger.Info("Message dispatcher stopped")
			return

		case <-ctx.Done():
			w.logger.Info("Message dispatcher stopped - context canceled")
			return

		case delivery, ok := <-deliveries:
			if !ok {
				w.logger.Warn("RabbitMQ delivery channel closed")
				return
			}

			evt, err := events.Decode(delivery.Body)
			if err != nil {
				w.logger.Error("Failed to parse message JSON",
					slog.String("error", err.Error()),
					slog.String("body", string(delivery.Body)),
				)
				// malformed messages are dropped, or dead-lettered if the queue has a DLX
				if nackErr := delivery.Nack(false, false); nackErr != nil {
					w.logger.Error("Failed to NACK malformed message",
						slog.String("error", nackErr.Error()),
					)
				}
				continue
			}

			msg := &domain.EventMessage{Event: evt, Delivery: delivery}

			select {
			case w.messages <- msg:
				w.logger.Debug("Event dispatched to worker pool",
					slog.String("type", evt.Type),
					slog.Uint64("delivery_tag", delivery.DeliveryTag),
				)
			case <-w.stopChan:
				w.requeueOnShutdown(delivery)
				return
			case <-ctx.Done():
				w.requeueOnShutdown(delivery)
				return
			}
		}
	}
}

func (w *Worker) requeueOnShutdown(delivery amqp.Delivery) {
	w.logger.Info("Message dispatcher stopped while dispatching event")
	if nackErr := delivery.Nack(false, true); nackErr != nil {
		w.logger.Error("Failed to NACK message on shutdown",
			slog.String("error", nackErr.Error()),
		)
	}
}
