package domain

import (
	"github.com/cuongbtq/jobsearch/internal/events"
	amqp "github.com/rabbitmq/amqp091-go"
)

// EventMessage is a decoded delivery waiting for a pool worker
type EventMessage struct {
	Event    events.Event
	Delivery amqp.Delivery
}
