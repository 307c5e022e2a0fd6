package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

const contentTypeJSON = "application/json"

// MessagePublisher is satisfied by the shared RabbitMQ client
type MessagePublisher interface {
	PublishWithRetry(ctx context.Context, routingKey string, body []byte, contentType string) error
}

// RabbitPublisher publishes events as JSON messages to RabbitMQ
type RabbitPublisher struct {
	client MessagePublisher
	logger *slog.Logger
}

// NewRabbitPublisher creates a new RabbitPublisher
func NewRabbitPublisher(client MessagePublisher, logger *slog.Logger) *RabbitPublisher {
	return &RabbitPublisher{
		client: client,
		logger: logger,
	}
}

// Publish encodes evt and hands it to the broker, routed by its type
func (p *RabbitPublisher) Publish(ctx context.Context, evt Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.client.PublishWithRetry(ctx, evt.Type, body, contentTypeJSON); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", evt.Type, err)
	}

	p.logger.Debug("Event published",
		slog.String("type", evt.Type),
		slog.Int("entity_id", evt.EntityID),
	)

	return nil
}
