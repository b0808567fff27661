package kafka

import (
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

// newTransport builds the writer transport for cfg. It returns nil when
// neither TLS nor SASL is configured so the writer uses its default.
func newTransport(cfg Config) (*kafkago.Transport, error) {
	mechanism, err := resolveSASL(cfg)
	if err != nil {
		return nil, err
	}
	if !cfg.TLS && mechanism == nil {
		return nil, nil
	}

	t := &kafkago.Transport{
		DialTimeout: 10 * time.Second,
		SASL:        mechanism,
	}
	if cfg.TLS {
		t.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return t, nil
}

// resolveSASL returns the SASL mechanism named by cfg, or nil when SASL is off.
func resolveSASL(cfg Config) (sasl.Mechanism, error) {
	switch strings.ToUpper(cfg.SASLMechanism) {
	case "":
		return nil, nil
	case "PLAIN":
		return plain.Mechanism{
			Username: cfg.SASLUsername,
			Password: cfg.SASLPassword,
		}, nil
	case "SCRAM-SHA-256":
		m, err := scram.Mechanism(scram.SHA256, cfg.SASLUsername, cfg.SASLPassword)
		if err != nil {
			return nil, fmt.Errorf("kafka: scram-sha-256: %w", err)
		}
		return m, nil
	case "SCRAM-SHA-512":
		m, err := scram.Mechanism(scram.SHA512, cfg.SASLUsername, cfg.SASLPassword)
		if err != nil {
			return nil, fmt.Errorf("kafka: scram-sha-512: %w", err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("kafka: unsupported SASL mechanism %q", cfg.SASLMechanism)
	}
}
