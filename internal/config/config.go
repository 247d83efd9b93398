package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mamae10/webhook-relay/internal/domain"
)

// DefaultBackendURL is the apply-premium endpoint used when BACKEND_URL is unset.
const DefaultBackendURL = "https://portaldavida.pro/backend-php/webhook_premium.php"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port               int           `validate:"gt=0,lte=65535"`
	BackendURL         string        `validate:"required,url"`
	BackendTimeout     time.Duration `validate:"gt=0"`
	BackendMaxRetries  uint64        `validate:"lte=3"`
	BackendTokenSecret string
	// WebhookSecrets enables signature checks for the providers present.
	WebhookSecrets map[domain.Provider]string
	CORSOrigins    []string
	RateLimitRPS   float64 `validate:"gt=0"`
	RateLimitBurst int     `validate:"gt=0"`
	LogLevel       string  `validate:"oneof=debug info warn error"`
	LogFormat      string  `validate:"oneof=auto json console"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	port, _ := strconv.Atoi(getEnv("PORT", "4000"))

	timeout, err := time.ParseDuration(getEnv("BACKEND_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("BACKEND_TIMEOUT: %w", err)
	}
	retries, err := strconv.ParseUint(getEnv("BACKEND_MAX_RETRIES", "1"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("BACKEND_MAX_RETRIES: %w", err)
	}
	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "20"), 64)
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}
	burst, _ := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "40"))

	secrets := make(map[domain.Provider]string)
	for _, p := range domain.Providers() {
		if s := os.Getenv(strings.ToUpper(string(p)) + "_WEBHOOK_SECRET"); s != "" {
			secrets[p] = s
		}
	}

	var origins []string
	for _, o := range strings.Split(getEnv("CORS_ORIGINS", ""), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	cfg := &Config{
		Port:               port,
		BackendURL:         getEnv("BACKEND_URL", DefaultBackendURL),
		BackendTimeout:     timeout,
		BackendMaxRetries:  retries,
		BackendTokenSecret: os.Getenv("BACKEND_TOKEN_SECRET"),
		WebhookSecrets:     secrets,
		CORSOrigins:        origins,
		RateLimitRPS:       rps,
		RateLimitBurst:     burst,
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "auto")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
