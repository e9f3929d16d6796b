package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Gemini configuration.
	GeminiAPIKey      string
	GeminiModel       string
	GeminiBaseURL     string
	GeminiTimeout     time.Duration
	GeminiTemperature float32

	// Request policy.
	MaxAttempts    int
	RetryBaseDelay time.Duration
	MinLoading     time.Duration
	CacheSize      int

	// Connectivity probe.
	ProbeAddr    string
	ProbeTimeout time.Duration

	// State publishing; no brokers disables it.
	KafkaBrokers    []string
	KafkaStateTopic string
}

// KafkaEnabled reports whether state transitions are published.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	geminiTimeout, err := parseDuration("GEMINI_TIMEOUT", "60s")
	if err != nil {
		return nil, err
	}
	retryBaseDelay, err := parseDuration("PREDICT_RETRY_BASE_DELAY", "1500ms")
	if err != nil {
		return nil, err
	}
	minLoading, err := parseDuration("PREDICT_MIN_LOADING", "750ms")
	if err != nil {
		return nil, err
	}
	probeTimeout, err := parseDuration("CONNECTIVITY_TIMEOUT", "2s")
	if err != nil {
		return nil, err
	}

	temperature, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("GEMINI_TEMPERATURE", "0.2"), 32)
	if err != nil || temperature < 0 || temperature > 2 {
		return nil, errors.New("invalid GEMINI_TEMPERATURE: must be between 0 and 2")
	}

	maxAttempts, err := strconv.Atoi(sharedcfg.EnvOrDefault("PREDICT_MAX_ATTEMPTS", "3"))
	if err != nil || maxAttempts < 1 || maxAttempts > 10 {
		return nil, errors.New("invalid PREDICT_MAX_ATTEMPTS: must be between 1 and 10")
	}

	cacheSize, err := strconv.Atoi(sharedcfg.EnvOrDefault("PREDICT_CACHE_SIZE", "0"))
	if err != nil || cacheSize < 0 {
		return nil, errors.New("invalid PREDICT_CACHE_SIZE: must be a non-negative integer")
	}

	var brokers []string
	if raw := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); raw != "" {
		brokers = sharedcfg.ParseBrokers(raw)
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       sharedcfg.EnvOrDefault("GEMINI_MODEL", "gemini-2.5-pro"),
		GeminiBaseURL:     os.Getenv("GEMINI_BASE_URL"),
		GeminiTimeout:     geminiTimeout,
		GeminiTemperature: float32(temperature),

		MaxAttempts:    maxAttempts,
		RetryBaseDelay: retryBaseDelay,
		MinLoading:     minLoading,
		CacheSize:      cacheSize,

		ProbeAddr:    sharedcfg.EnvOrDefault("CONNECTIVITY_PROBE_ADDR", "generativelanguage.googleapis.com:443"),
		ProbeTimeout: probeTimeout,

		KafkaBrokers:    brokers,
		KafkaStateTopic: sharedcfg.EnvOrDefault("KAFKA_STATE_TOPIC", "forecast-state"),
	}

	if cfg.GeminiAPIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is required")
	}
	if cfg.KafkaEnabled() && cfg.KafkaStateTopic == "" {
		return nil, errors.New("KAFKA_STATE_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s: must be a non-negative duration", key)
	}
	return d, nil
}
