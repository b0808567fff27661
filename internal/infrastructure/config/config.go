package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sergiomillane/motor-decisiones/internal/domain/service"
)

type DatabaseConfig struct {
	URL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type KafkaConfig struct {
	Brokers       []string
	Topic         string
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
	TLS           bool
}

type ReferenceDataConfig struct {
	BehaviorVectorPath string
	BehaviorTags       []string
}

type RulesConfig struct {
	BureauTable string
	RulesFile   string
	NullPolicy  string
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type Config struct {
	GRPCPort      int
	HTTPPort      int
	DB            DatabaseConfig
	Redis         RedisConfig
	Kafka         KafkaConfig
	ReferenceData ReferenceDataConfig
	Rules         RulesConfig
	TLS           TLSConfig
	LogLevel      string
	LogFormat     string
	Environment   string
	OTLPEndpoint  string
	ServiceName   string

	GRPCReflection bool
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		GRPCPort: getEnvInt("GRPC_PORT", 9091),
		HTTPPort: getEnvInt("HTTP_PORT", 8091),
		DB: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			CacheTTL: getEnvDuration("REFERENCE_CACHE_TTL", time.Hour),
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvList("KAFKA_BROKERS", nil),
			Topic:         getEnv("KAFKA_TOPIC", "decision.events"),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", ""),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
			TLS:           getEnvBool("KAFKA_TLS", false),
		},
		ReferenceData: ReferenceDataConfig{
			BehaviorVectorPath: getEnv("BEHAVIOR_VECTOR_PATH", ""),
			BehaviorTags:       getEnvList("BEHAVIOR_TAGS", []string{"AP3", "AP4"}),
		},
		Rules: RulesConfig{
			BureauTable: getEnv("BUREAU_TABLE", service.BureauTableVariantA),
			RulesFile:   getEnv("RULES_FILE", ""),
			NullPolicy:  getEnv("NULL_POLICY", string(service.NullPolicyCoerce)),
		},
		TLS: TLSConfig{
			CertFile: getEnv("TLS_CERT_FILE", ""),
			KeyFile:  getEnv("TLS_KEY_FILE", ""),
		},
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:  "decision-service",

		GRPCReflection: getEnvBool("GRPC_REFLECTION", false),
	}
}

// Validate reports configuration that cannot be served.
func (c Config) Validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if _, err := service.ParseNullPolicy(c.Rules.NullPolicy); err != nil {
		return fmt.Errorf("NULL_POLICY: %w", err)
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		return fmt.Errorf("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	return nil
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
