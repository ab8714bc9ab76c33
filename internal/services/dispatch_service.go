package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/harhspalod/ecommerce-main/internal/config"
	"github.com/harhspalod/ecommerce-main/internal/models"
)

// DispatchService hands finished call payloads to the downstream call system.
// Every payload is logged; when RabbitMQ is configured the payload is also
// published to the call dispatch queue for the dialer workers.
type DispatchService struct {
	queue   string
	channel *amqp.Channel
	conn    *amqp.Connection
}

// NewDispatchService connects to RabbitMQ and declares the dispatch queue.
// Call Close when done.
func NewDispatchService(cfg *config.RabbitMQConfig) (*DispatchService, error) {
	conn, err := amqp.Dial(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = channel.QueueDeclare(
		cfg.Queue, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	logrus.WithField("queue", cfg.Queue).Info("Call dispatch queue ready")
	return &DispatchService{queue: cfg.Queue, channel: channel, conn: conn}, nil
}

// Dispatch publishes one call payload to the dispatch queue
func (s *DispatchService) Dispatch(payload *models.CallSystemPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal call payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = s.channel.PublishWithContext(ctx,
		"",      // exchange
		s.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish call payload: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"call_id":  payload.CallID,
		"queue":    s.queue,
		"priority": payload.Priority,
	}).Info("Call payload published")
	return nil
}

// Close closes the RabbitMQ channel and connection
func (s *DispatchService) Close() error {
	if s.channel != nil {
		if err := s.channel.Close(); err != nil {
			logrus.WithError(err).Warn("Error closing RabbitMQ channel")
		}
	}
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			logrus.WithError(err).Warn("Error closing RabbitMQ connection")
		}
	}
	return nil
}

// LogDispatcher is the fallback sink used when RabbitMQ is disabled. It logs
// the full payload so the call flow stays observable in development.
type LogDispatcher struct{}

func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{}
}

// Dispatch logs the payload instead of queueing it
func (d *LogDispatcher) Dispatch(payload *models.CallSystemPayload) error {
	logrus.WithFields(logrus.Fields{
		"call_id":        payload.CallID,
		"customer_phone": payload.CustomerPhone,
		"trigger_type":   payload.TriggerType,
		"priority":       payload.Priority,
		"scheduled_at":   payload.ScheduledAt,
	}).Info("Call payload ready for dispatch")
	return nil
}
