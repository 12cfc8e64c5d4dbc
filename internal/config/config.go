package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	DatabaseURL     string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	AdvisoryWindowDays int
	FlagsTTL           time.Duration

	// Kafka ingestion configuration. The engine serves advisories from the
	// store alone when ingestion is disabled.
	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaGroupID     string
	BatchSize        int
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is honored if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	flagsTTL, err := parseDuration("FLAGS_TTL", "30s")
	if err != nil {
		return nil, err
	}

	windowDays, err := parsePositiveInt("ADVISORY_WINDOW_DAYS", 7)
	if err != nil {
		return nil, err
	}

	batchSize, err := parsePositiveInt("BATCH_SIZE", 50)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		AdvisoryWindowDays: windowDays,
		FlagsTTL:           flagsTTL,

		KafkaEnabled:     os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:     parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic: envOrDefault("KAFKA_SOURCE_TOPIC", "raw-avalanche-forecasts"),
		KafkaGroupID:     envOrDefault("KAFKA_GROUP_ID", "avalanche-advisory"),
		BatchSize:        batchSize,
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_SOURCE_TOPIC is not set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return n, nil
}
