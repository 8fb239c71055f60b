package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// KafkaNotifier publishes schema change events to a Kafka topic. Messages
// are keyed by schema ID so that all events of one lineage land in one
// partition and preserve their order.
//
// KafkaNotifier implements the Notifier interface.
type KafkaNotifier struct {
	cfg    Config
	writer *kafka.Writer
}

// NewKafkaNotifier creates a Kafka-backed notifier.
// Returns the concrete *KafkaNotifier type.
func NewKafkaNotifier(cfg Config) (*KafkaNotifier, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("events: at least one Kafka broker is required")
	}
	if cfg.Topic == "" {
		cfg.Topic = DefaultTopic
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &KafkaNotifier{cfg: cfg, writer: writer}, nil
}

// SchemaAdmitted implements Notifier.
func (k *KafkaNotifier) SchemaAdmitted(ctx context.Context, ev Event) error {
	return k.publish(ctx, ev)
}

// SchemaDeleted implements Notifier.
func (k *KafkaNotifier) SchemaDeleted(ctx context.Context, ev Event) error {
	return k.publish(ctx, ev)
}

func (k *KafkaNotifier) publish(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("events: failed to marshal event for %q: %w", ev.SchemaID, err)
	}

	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.SchemaID),
		Value: body,
	})
	if err != nil {
		return fmt.Errorf("events: failed to publish event for %q: %w", ev.SchemaID, err)
	}
	return nil
}

// Close implements Notifier.
func (k *KafkaNotifier) Close() error {
	return k.writer.Close()
}
