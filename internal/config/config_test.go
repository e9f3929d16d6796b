package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "AIza-test-key"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", testAPIKey)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, testAPIKey, cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.GeminiModel)
	assert.Empty(t, cfg.GeminiBaseURL)
	assert.Equal(t, 60*time.Second, cfg.GeminiTimeout)
	assert.InDelta(t, 0.2, cfg.GeminiTemperature, 1e-6)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 1500*time.Millisecond, cfg.RetryBaseDelay)
	assert.Equal(t, 750*time.Millisecond, cfg.MinLoading)
	assert.Zero(t, cfg.CacheSize)
	assert.Equal(t, "generativelanguage.googleapis.com:443", cfg.ProbeAddr)
	assert.Equal(t, 2*time.Second, cfg.ProbeTimeout)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.KafkaEnabled())
	assert.Equal(t, "forecast-state", cfg.KafkaStateTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", testAPIKey)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-flash")
	t.Setenv("GEMINI_BASE_URL", "http://localhost:8089/")
	t.Setenv("GEMINI_TIMEOUT", "15s")
	t.Setenv("GEMINI_TEMPERATURE", "0")
	t.Setenv("PREDICT_MAX_ATTEMPTS", "5")
	t.Setenv("PREDICT_RETRY_BASE_DELAY", "250ms")
	t.Setenv("PREDICT_MIN_LOADING", "0s")
	t.Setenv("PREDICT_CACHE_SIZE", "128")
	t.Setenv("CONNECTIVITY_PROBE_ADDR", "1.1.1.1:53")
	t.Setenv("CONNECTIVITY_TIMEOUT", "500ms")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_STATE_TOPIC", "custom-state")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, "http://localhost:8089/", cfg.GeminiBaseURL)
	assert.Equal(t, 15*time.Second, cfg.GeminiTimeout)
	assert.Zero(t, cfg.GeminiTemperature)
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryBaseDelay)
	assert.Zero(t, cfg.MinLoading)
	assert.Equal(t, 128, cfg.CacheSize)
	assert.Equal(t, "1.1.1.1:53", cfg.ProbeAddr)
	assert.Equal(t, 500*time.Millisecond, cfg.ProbeTimeout)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, "custom-state", cfg.KafkaStateTopic)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", testAPIKey)
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"GEMINI_TIMEOUT", "bad"},
		{"GEMINI_TIMEOUT", "-1s"},
		{"GEMINI_TEMPERATURE", "hot"},
		{"GEMINI_TEMPERATURE", "2.5"},
		{"PREDICT_MAX_ATTEMPTS", "0"},
		{"PREDICT_MAX_ATTEMPTS", "99"},
		{"PREDICT_RETRY_BASE_DELAY", "soon"},
		{"PREDICT_MIN_LOADING", "-750ms"},
		{"PREDICT_CACHE_SIZE", "-1"},
		{"CONNECTIVITY_TIMEOUT", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv("GEMINI_API_KEY", testAPIKey)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
