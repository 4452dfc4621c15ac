package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "POSTGRES_DSN", "TEMPORAL_DISABLED", "STORE_NAME", "DELHIVERY_API_TOKEN",
		"DELHIVERY_TIMEOUT_SECONDS", "SMTP_HOST", "SMTP_PORT", "KAFKA_BROKERS", "KAFKA_TOPIC",
		"UPLOAD_DIR", "UPLOAD_REMOTE_URL", "IDEMPOTENCY_TTL_HOURS", "ENVIRONMENT", "OTEL_EXPORTER",
		"OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_INSECURE", "OTEL_METRIC_EXPORT_INTERVAL_SECONDS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "Storefront", cfg.StoreName)
	assert.Equal(t, "https://track.delhivery.com", cfg.Delhivery.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Delhivery.Timeout)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "orders.events", cfg.Kafka.Topic)
	assert.Equal(t, "./uploads", cfg.Upload.Dir)
	assert.Equal(t, "/uploads", cfg.Upload.PublicBaseURL)
	assert.Equal(t, 72*time.Hour, cfg.IdempotencyTTL)
	assert.False(t, cfg.TemporalDisabled)

	settings := cfg.Telemetry.Settings("storefront-admin-api")
	assert.Equal(t, "storefront-admin-api", settings.ServiceName)
	assert.Equal(t, "local", settings.Environment)
	assert.Equal(t, "otlp", settings.Exporter)
	assert.True(t, settings.OTLPInsecure)
	assert.Equal(t, time.Minute, settings.MetricInterval)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TEMPORAL_DISABLED", "true")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,,")
	t.Setenv("DELHIVERY_TIMEOUT_SECONDS", "30")
	t.Setenv("IDEMPOTENCY_TTL_HOURS", "24")
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("OTEL_EXPORTER", "STDOUT")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	t.Setenv("OTEL_METRIC_EXPORT_INTERVAL_SECONDS", "15")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.TemporalDisabled)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, cfg.Delhivery.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
	assert.Equal(t, "staging", cfg.Telemetry.Environment)
	assert.Equal(t, "stdout", cfg.Telemetry.Exporter)
	assert.False(t, cfg.Telemetry.OTLPInsecure)
	assert.Equal(t, 15*time.Second, cfg.Telemetry.MetricInterval)
}

func TestLoadConfig_RejectsInvalidNumbers(t *testing.T) {
	for _, key := range []string{"DELHIVERY_TIMEOUT_SECONDS", "SMTP_PORT", "IDEMPOTENCY_TTL_HOURS", "OTEL_METRIC_EXPORT_INTERVAL_SECONDS"} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, "-3")
			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadConfig_RejectsUnknownExporter(t *testing.T) {
	t.Setenv("OTEL_EXPORTER", "zipkin")
	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OTEL_EXPORTER")
}
