package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultQueueName is the queue the sync worker consumes from
const DefaultQueueName = "integration_syncs"

// SyncJob asks the worker to run one integration sync
type SyncJob struct {
	IntegrationID int       `json:"integration_id"`
	System        string    `json:"system"`
	RequestedAt   time.Time `json:"requested_at"`
}

// Publisher publishes sync jobs to RabbitMQ
type Publisher struct {
	conn      *Connection
	queueName string
}

// NewPublisher declares the queue and returns a publisher
func NewPublisher(conn *Connection, queueName string) (*Publisher, error) {
	if conn == nil {
		return nil, errors.New("connection cannot be nil")
	}
	if queueName == "" {
		return nil, errors.New("queue name cannot be empty")
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}

	// Durable queue so pending syncs survive a broker restart
	_, err = ch.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &Publisher{conn: conn, queueName: queueName}, nil
}

// PublishSync enqueues a sync job for the given integration
func (p *Publisher) PublishSync(integrationID int, system string) error {
	job := SyncJob{
		IntegrationID: integrationID,
		System:        system,
		RequestedAt:   time.Now().UTC(),
	}

	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal sync job: %w", err)
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to get channel: %w", err)
	}

	err = ch.Publish(
		"",          // exchange (default)
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish sync job: %w", err)
	}

	return nil
}
