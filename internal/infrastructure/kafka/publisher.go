package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sergiomillane/motor-decisiones/internal/domain/port"
	"github.com/sergiomillane/motor-decisiones/pkg/events"
	pkgkafka "github.com/sergiomillane/motor-decisiones/pkg/kafka"
)

// MessageProducer is the subset of pkgkafka.Producer the publisher needs.
type MessageProducer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// Publisher implements port.EventPublisher using Kafka. Events are keyed by
// evaluation ID so every event of one evaluation lands on the same partition.
type Publisher struct {
	producer MessageProducer
	logger   *slog.Logger
	topic    string
}

var _ port.EventPublisher = (*Publisher)(nil)

// NewPublisher creates a new Kafka event publisher.
func NewPublisher(producer MessageProducer, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish sends domain events to Kafka.
func (p *Publisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(domainEvents))
	for _, evt := range domainEvents {
		eventType := evt.EventType()

		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", eventType, err)
		}

		p.logger.DebugContext(ctx, "publishing event",
			slog.String("event_type", eventType),
			slog.String("topic", p.topic),
			slog.Int("payload_size", len(payload)),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type":     eventType,
				"event_id":       evt.EventID(),
				"aggregate_type": evt.AggregateType(),
				"content-type":   "application/json",
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", p.topic, err)
	}

	return nil
}
