package kafka_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergiomillane/motor-decisiones/internal/domain/event"
	"github.com/sergiomillane/motor-decisiones/internal/infrastructure/kafka"
	pkgkafka "github.com/sergiomillane/motor-decisiones/pkg/kafka"
)

type fakeProducer struct {
	topic       string
	messages    []pkgkafka.Message
	publishFunc func(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

func (f *fakeProducer) Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error {
	if f.publishFunc != nil {
		return f.publishFunc(ctx, topic, messages...)
	}
	f.topic = topic
	f.messages = append(f.messages, messages...)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

var evaluatedAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func completedEvent() event.EvaluationCompleted {
	return event.NewEvaluationCompleted(
		"7f1c0c3e-2d6b-4a51-9f55-1f0b4f9e6a10", "53535", "existing_client",
		30, true, "ACCEPTED",
		map[string]int{"payment_behavior": 0, "bureau_score": 20},
		nil, evaluatedAt,
	)
}

func TestPublisher_Publish(t *testing.T) {
	producer := &fakeProducer{}
	pub := kafka.NewPublisher(producer, "decision.events", testLogger())

	completed := completedEvent()
	inconsistent := event.NewDataInconsistencyDetected(completed.AggregateID(), "53535", "existing_client", evaluatedAt)

	require.NoError(t, pub.Publish(context.Background(), completed, inconsistent))

	assert.Equal(t, "decision.events", producer.topic)
	require.Len(t, producer.messages, 2)

	first := producer.messages[0]
	assert.Equal(t, completed.AggregateID(), string(first.Key))
	assert.Equal(t, event.EventTypeEvaluationCompleted, first.Headers["event_type"])
	assert.Equal(t, completed.EventID(), first.Headers["event_id"])
	assert.Equal(t, event.AggregateTypeEvaluation, first.Headers["aggregate_type"])

	var payload map[string]any
	require.NoError(t, json.Unmarshal(first.Value, &payload))
	assert.Equal(t, "ACCEPTED", payload["decision"])
	assert.Equal(t, "53535", payload["client_id"])
	assert.Equal(t, event.EventTypeEvaluationCompleted, payload["event_type"])

	assert.Equal(t, string(first.Key), string(producer.messages[1].Key))
	assert.Equal(t, event.EventTypeDataInconsistency, producer.messages[1].Headers["event_type"])
}

func TestPublisher_NoEvents(t *testing.T) {
	producer := &fakeProducer{}
	pub := kafka.NewPublisher(producer, "decision.events", testLogger())

	require.NoError(t, pub.Publish(context.Background()))
	assert.Empty(t, producer.topic)
}

func TestPublisher_ProducerError(t *testing.T) {
	brokerErr := errors.New("leader not available")
	producer := &fakeProducer{
		publishFunc: func(context.Context, string, ...pkgkafka.Message) error { return brokerErr },
	}
	pub := kafka.NewPublisher(producer, "decision.events", testLogger())

	err := pub.Publish(context.Background(), completedEvent())
	require.ErrorIs(t, err, brokerErr)
	assert.Contains(t, err.Error(), "decision.events")
}

func TestLoggingPublisher_Publish(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	pub := kafka.NewLoggingPublisher(logger)

	require.NoError(t, pub.Publish(context.Background(), completedEvent()))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "domain event", entry["msg"])
	assert.Equal(t, event.EventTypeEvaluationCompleted, entry["event_type"])
	assert.Contains(t, entry["payload"], `"decision":"ACCEPTED"`)
}
