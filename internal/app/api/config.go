package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"

	delhiveryclient "github.com/Apurer/storefront-admin/internal/clients/http/delhivery"
	platformobservability "github.com/Apurer/storefront-admin/internal/platform/observability"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port              string
	PostgresDSN       string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	StoreName         string
	IdempotencyTTL    time.Duration

	Delhivery DelhiveryConfig
	SMTP      SMTPConfig
	Kafka     KafkaConfig
	Upload    UploadConfig
	Telemetry TelemetryConfig
}

// TelemetryConfig selects where spans and metrics are exported.
type TelemetryConfig struct {
	Environment    string
	Exporter       string
	OTLPEndpoint   string
	OTLPInsecure   bool
	MetricInterval time.Duration
}

// Settings returns the observability settings for the named process.
func (t TelemetryConfig) Settings(serviceName string) platformobservability.Settings {
	return platformobservability.Settings{
		ServiceName:    serviceName,
		Environment:    t.Environment,
		Exporter:       t.Exporter,
		OTLPEndpoint:   t.OTLPEndpoint,
		OTLPInsecure:   t.OTLPInsecure,
		MetricInterval: t.MetricInterval,
	}
}

// DelhiveryConfig configures the carrier client. An empty token disables carrier features.
type DelhiveryConfig struct {
	BaseURL        string
	Token          string
	Timeout        time.Duration
	PickupLocation string
}

// SMTPConfig configures customer email. An empty host selects the log notifier.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// KafkaConfig configures the order event stream. No brokers selects the log publisher.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// UploadConfig configures image storage. A remote URL takes precedence over the local directory.
type UploadConfig struct {
	Dir            string
	PublicBaseURL  string
	RemoteURL      string
	RemoteToken    string
	PlaceholderURL string
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		StoreName:         envDefault("STORE_NAME", "Storefront"),
		Delhivery: DelhiveryConfig{
			BaseURL:        envDefault("DELHIVERY_BASE_URL", delhiveryclient.DefaultBaseURL),
			Token:          strings.TrimSpace(os.Getenv("DELHIVERY_API_TOKEN")),
			PickupLocation: strings.TrimSpace(os.Getenv("DELHIVERY_PICKUP_LOCATION")),
		},
		SMTP: SMTPConfig{
			Host:     strings.TrimSpace(os.Getenv("SMTP_HOST")),
			Username: strings.TrimSpace(os.Getenv("SMTP_USERNAME")),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     strings.TrimSpace(os.Getenv("SMTP_FROM")),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   envDefault("KAFKA_TOPIC", "orders.events"),
		},
		Upload: UploadConfig{
			Dir:            envDefault("UPLOAD_DIR", "./uploads"),
			PublicBaseURL:  envDefault("UPLOAD_PUBLIC_BASE_URL", "/uploads"),
			RemoteURL:      strings.TrimSpace(os.Getenv("UPLOAD_REMOTE_URL")),
			RemoteToken:    strings.TrimSpace(os.Getenv("UPLOAD_REMOTE_TOKEN")),
			PlaceholderURL: strings.TrimSpace(os.Getenv("UPLOAD_PLACEHOLDER_URL")),
		},
		Telemetry: TelemetryConfig{
			Environment:  envDefault("ENVIRONMENT", "local"),
			Exporter:     strings.ToLower(envDefault("OTEL_EXPORTER", platformobservability.ExporterOTLP)),
			OTLPEndpoint: strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
			OTLPInsecure: strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE")) != "0",
		},
	}
	switch cfg.Telemetry.Exporter {
	case platformobservability.ExporterOTLP, platformobservability.ExporterStdout:
	default:
		return Config{}, fmt.Errorf("OTEL_EXPORTER must be %q or %q", platformobservability.ExporterOTLP, platformobservability.ExporterStdout)
	}

	timeoutSeconds, err := positiveInt("DELHIVERY_TIMEOUT_SECONDS", 15)
	if err != nil {
		return Config{}, err
	}
	cfg.Delhivery.Timeout = time.Duration(timeoutSeconds) * time.Second

	if cfg.SMTP.Port, err = positiveInt("SMTP_PORT", 587); err != nil {
		return Config{}, err
	}

	ttlHours, err := positiveInt("IDEMPOTENCY_TTL_HOURS", 72)
	if err != nil {
		return Config{}, err
	}
	cfg.IdempotencyTTL = time.Duration(ttlHours) * time.Hour

	intervalSeconds, err := positiveInt("OTEL_METRIC_EXPORT_INTERVAL_SECONDS", 60)
	if err != nil {
		return Config{}, err
	}
	cfg.Telemetry.MetricInterval = time.Duration(intervalSeconds) * time.Second
	return cfg, nil
}

func positiveInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return value, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
