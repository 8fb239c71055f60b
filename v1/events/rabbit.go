package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Routing keys used on the topic exchange.
const (
	routingKeyAdmitted = "schema.admitted"
	routingKeyDeleted  = "schema.deleted"
)

// RabbitNotifier publishes schema change events to a RabbitMQ topic
// exchange.
//
// RabbitNotifier implements the Notifier interface.
type RabbitNotifier struct {
	cfg  Config
	conn *amqp.Connection

	// mu serializes channel access; amqp channels are not safe for
	// concurrent publishes.
	mu      sync.Mutex
	channel *amqp.Channel
}

// NewRabbitNotifier creates a RabbitMQ-backed notifier, declaring the
// durable topic exchange it publishes to.
// Returns the concrete *RabbitNotifier type.
func NewRabbitNotifier(cfg Config) (*RabbitNotifier, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("events: AMQP URL is required")
	}
	if cfg.Exchange == "" {
		cfg.Exchange = DefaultExchange
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("events: failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("events: failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("events: failed to declare exchange %q: %w", cfg.Exchange, err)
	}

	return &RabbitNotifier{cfg: cfg, conn: conn, channel: channel}, nil
}

// SchemaAdmitted implements Notifier.
func (r *RabbitNotifier) SchemaAdmitted(ctx context.Context, ev Event) error {
	return r.publish(ctx, routingKeyAdmitted, ev)
}

// SchemaDeleted implements Notifier.
func (r *RabbitNotifier) SchemaDeleted(ctx context.Context, ev Event) error {
	return r.publish(ctx, routingKeyDeleted, ev)
}

func (r *RabbitNotifier) publish(ctx context.Context, routingKey string, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("events: failed to marshal event for %q: %w", ev.SchemaID, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	r.mu.Lock()
	defer r.mu.Unlock()
	err = r.channel.PublishWithContext(ctx,
		r.cfg.Exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   time.UnixMilli(ev.Timestamp),
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("events: failed to publish event for %q: %w", ev.SchemaID, err)
	}
	return nil
}

// Close implements Notifier.
func (r *RabbitNotifier) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.channel.Close(); err != nil {
		r.conn.Close()
		return err
	}
	return r.conn.Close()
}
