package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sergiomillane/motor-decisiones/internal/domain/port"
	"github.com/sergiomillane/motor-decisiones/pkg/events"
)

// LoggingPublisher writes events to the log. decisiond uses it when no
// brokers are configured.
type LoggingPublisher struct {
	logger *slog.Logger
}

var _ port.EventPublisher = (*LoggingPublisher)(nil)

// NewLoggingPublisher creates a new LoggingPublisher.
func NewLoggingPublisher(logger *slog.Logger) *LoggingPublisher {
	return &LoggingPublisher{logger: logger}
}

// Publish logs each event with its JSON payload.
func (p *LoggingPublisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	for _, evt := range domainEvents {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", evt.EventType(), err)
		}
		p.logger.InfoContext(ctx, "domain event",
			slog.String("event_type", evt.EventType()),
			slog.String("aggregate_id", evt.AggregateID()),
			slog.String("payload", string(payload)),
		)
	}
	return nil
}
