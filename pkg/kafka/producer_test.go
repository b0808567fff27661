package kafka

import (
	"context"
	"sort"
	"testing"

	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092", "localhost:9093"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"localhost:9092", "localhost:9093"}, p.brokers)
	assert.Nil(t, p.transport)
	assert.Empty(t, p.writers)
}

func TestNewProducer_RequiresBrokers(t *testing.T) {
	_, err := NewProducer(Config{})
	require.Error(t, err)
}

func TestNewProducer_Transport(t *testing.T) {
	t.Run("tls only", func(t *testing.T) {
		p, err := NewProducer(Config{Brokers: []string{"kafka:9093"}, TLS: true})
		require.NoError(t, err)
		require.NotNil(t, p.transport)
		assert.NotNil(t, p.transport.TLS)
		assert.Nil(t, p.transport.SASL)
	})

	t.Run("plain sasl", func(t *testing.T) {
		p, err := NewProducer(Config{
			Brokers:       []string{"kafka:9093"},
			SASLMechanism: "plain",
			SASLUsername:  "decision",
			SASLPassword:  "secret",
		})
		require.NoError(t, err)
		require.NotNil(t, p.transport)
		assert.Equal(t, plain.Mechanism{Username: "decision", Password: "secret"}, p.transport.SASL)
	})

	t.Run("scram sasl", func(t *testing.T) {
		p, err := NewProducer(Config{
			Brokers:       []string{"kafka:9093"},
			SASLMechanism: "SCRAM-SHA-512",
			SASLUsername:  "decision",
			SASLPassword:  "secret",
		})
		require.NoError(t, err)
		require.NotNil(t, p.transport)
		assert.Equal(t, "SCRAM-SHA-512", p.transport.SASL.Name())
	})

	t.Run("unknown mechanism", func(t *testing.T) {
		_, err := NewProducer(Config{Brokers: []string{"kafka:9093"}, SASLMechanism: "GSSAPI"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported SASL mechanism")
	})
}

func TestGetOrCreateWriter_ReusesPerTopic(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"kafka:9092"}, TLS: true})
	require.NoError(t, err)
	defer p.Close() //nolint:errcheck

	w1 := p.getOrCreateWriter("decision.events")
	w2 := p.getOrCreateWriter("decision.events")
	w3 := p.getOrCreateWriter("decision.audit")

	assert.Same(t, w1, w2)
	assert.NotSame(t, w1, w3)
	assert.Equal(t, "decision.events", w1.Topic)
	assert.Same(t, p.transport, w1.Transport)
	assert.Len(t, p.writers, 2)
}

func TestPublish_NoMessagesIsNoop(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"kafka:9092"}})
	require.NoError(t, err)

	require.NoError(t, p.Publish(context.Background(), "decision.events"))
	assert.Empty(t, p.writers)
}

func TestToKafkaMessages(t *testing.T) {
	msgs := toKafkaMessages([]Message{{
		Key:   []byte("evaluation-123"),
		Value: []byte(`{"decision":"ACCEPTED"}`),
		Headers: map[string]string{
			"event_type":   "decision.evaluation.completed",
			"content-type": "application/json",
		},
	}})

	require.Len(t, msgs, 1)
	assert.Equal(t, "evaluation-123", string(msgs[0].Key))
	assert.JSONEq(t, `{"decision":"ACCEPTED"}`, string(msgs[0].Value))

	keys := make([]string, 0, len(msgs[0].Headers))
	for _, h := range msgs[0].Headers {
		keys = append(keys, h.Key)
	}
	sort.Strings(keys)
	assert.Equal(t, []string{"content-type", "event_type"}, keys)
}

func TestClose_ResetsWriters(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"kafka:9092"}})
	require.NoError(t, err)

	p.getOrCreateWriter("decision.events")
	require.NoError(t, p.Close())
	assert.Empty(t, p.writers)
}
