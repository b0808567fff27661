package kafka

// Config holds Kafka connection parameters.
type Config struct {
	// SASL configuration for authentication. Empty mechanism disables SASL.
	SASLMechanism string // "PLAIN" or "SCRAM-SHA-256" or "SCRAM-SHA-512"
	SASLUsername  string
	SASLPassword  string

	Brokers []string

	// TLS enables TLS for Kafka connections.
	TLS bool
}
