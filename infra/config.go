package infra

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	ServerName  string `koanf:"server_name"`
	ServerPort  string `koanf:"server_port"`
	Environment string `koanf:"environment" validate:"required"`
	LogLevel    string `koanf:"log_level" validate:"omitempty,oneof=trace debug info warn error"`

	DBHost           string `koanf:"db_host" validate:"required"`
	DBPort           string `koanf:"db_port" validate:"required"`
	DBUser           string `koanf:"db_user" validate:"required"`
	DBPassword       string `koanf:"db_password"`
	DBDatabase       string `koanf:"db_database" validate:"required"`
	DBSSLMode        string `koanf:"db_ssl_mode"`
	DBDriver         string `koanf:"db_driver"`
	DBMigrationsPath string `koanf:"db_migrations_path"`

	RedisUrl string        `koanf:"redis_url"`
	DedupTTL time.Duration `koanf:"dedup_ttl"`

	PaymongoSecretKey          string        `koanf:"paymongo_secret_key"`
	PaymongoWebhookSecret      string        `koanf:"paymongo_webhook_secret"`
	PaymongoBaseURL            string        `koanf:"paymongo_base_url" validate:"omitempty,url"`
	PaymongoSignatureTolerance time.Duration `koanf:"paymongo_signature_tolerance" validate:"gte=0"`
	PaymentRedirectURL         string        `koanf:"payment_redirect_url"`
	PaymentCurrency            string        `koanf:"payment_currency" validate:"omitempty,len=3"`

	FcmServiceAccountJSON string `koanf:"fcm_service_account_json"`
	DBWebhookSecret       string `koanf:"db_webhook_secret"`

	CorsOrigins        string   `koanf:"cors_allowed_origins"`
	CorsAllowedOrigins []string `koanf:"-"`
}

// NewConfig reads the process environment, falling back to a .env file when
// ENVIRONMENT is not set.
func NewConfig() (Config, error) {
	if os.Getenv("ENVIRONMENT") == "" {
		if err := godotenv.Load(".env"); err != nil {
			return Config{}, fmt.Errorf("loading env file: %w", err)
		}
	}

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return Config{}, fmt.Errorf("loading env variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.applyDefaults()

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ServerName == "" {
		c.ServerName = "roadside-webhooks"
	}
	if c.ServerPort == "" {
		c.ServerPort = ":8080"
	}
	if !strings.Contains(c.ServerPort, ":") {
		c.ServerPort = ":" + c.ServerPort
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.DBDriver == "" {
		c.DBDriver = "postgres"
	}
	if c.DBSSLMode == "" {
		c.DBSSLMode = "disable"
	}
	if c.DBMigrationsPath == "" {
		c.DBMigrationsPath = "db/migration"
	}
	if c.DedupTTL <= 0 {
		c.DedupTTL = 24 * time.Hour
	}
	if c.PaymongoBaseURL == "" {
		c.PaymongoBaseURL = "https://api.paymongo.com/v1"
	}
	if c.PaymentRedirectURL == "" {
		c.PaymentRedirectURL = "yourapp://payment/callback"
	}
	if c.PaymentCurrency == "" {
		c.PaymentCurrency = "PHP"
	}
	c.CorsAllowedOrigins = splitList(c.CorsOrigins)
	if len(c.CorsAllowedOrigins) == 0 {
		c.CorsAllowedOrigins = []string{"*"}
	}
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
