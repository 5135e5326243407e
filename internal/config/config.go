package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name      string `envconfig:"APP_NAME" default:"Cagnotte"`
		Port      int    `envconfig:"PORT" default:"8080"`
		LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
		LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"cagnotte"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
		Issuer    string `envconfig:"AUTH_ISSUER"`
		// Owner used by the TUI, which talks to the services directly.
		LocalOwnerID string `envconfig:"LOCAL_OWNER_ID"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	}

	Storage struct {
		Endpoint  string        `envconfig:"S3_ENDPOINT"`
		Region    string        `envconfig:"S3_REGION" default:"us-east-1"`
		Bucket    string        `envconfig:"S3_BUCKET" default:"justificatifs"`
		AccessKey string        `envconfig:"S3_ACCESS_KEY"`
		SecretKey string        `envconfig:"S3_SECRET_KEY"`
		URLExpiry time.Duration `envconfig:"S3_URL_EXPIRY" default:"15m"`
	}

	Ledger struct {
		MaxAttempts uint64        `envconfig:"LEDGER_MAX_ATTEMPTS" default:"3"`
		RetryBase   time.Duration `envconfig:"LEDGER_RETRY_BASE" default:"20ms"`
		// Destination accounts whose name matches this pattern get a rent receipt.
		RentAccountPattern string `envconfig:"RENT_ACCOUNT_PATTERN" default:"(?i)loyer"`
	}

	Telemetry struct {
		Enabled bool `envconfig:"TELEMETRY_ENABLED" default:"false"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
