package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           string        `env:"PORT" env-default:"8080"`
	DatabaseDriver string        `env:"DATABASE_DRIVER" env-default:"sqlite"`
	DatabaseURL    string        `env:"DATABASE_URL" env-default:"data/dashboard.db"`
	RootDir        string        `env:"ROOT_DIR" env-default:"."`
	StorageBackend string        `env:"STORAGE_BACKEND" env-default:"fs"`
	S3Bucket       string        `env:"S3_BUCKET"`
	AWSRegion      string        `env:"AWS_REGION" env-default:"us-east-1"`
	S3Endpoint     string        `env:"S3_ENDPOINT"`
	RabbitMQURL    string        `env:"RABBITMQ_URL"`
	APIKey         string        `env:"API_KEY"`
	LogLevel       string        `env:"LOG_LEVEL" env-default:"info"`
	LogFormat      string        `env:"LOG_FORMAT" env-default:"json"`
	CacheTTL       time.Duration `env:"CACHE_TTL" env-default:"5m"`
	MaxUploadBytes int64         `env:"MAX_UPLOAD_BYTES" env-default:"10485760"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Default().Warn("loading .env failed", "error", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q (use postgres or sqlite)", c.DatabaseDriver)
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	switch c.StorageBackend {
	case "fs":
		if c.RootDir == "" {
			return errors.New("ROOT_DIR is required for the fs storage backend")
		}
	case "s3":
		if c.S3Bucket == "" {
			return errors.New("S3_BUCKET is required for the s3 storage backend")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q (use fs or s3)", c.StorageBackend)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("unsupported LOG_FORMAT %q", c.LogFormat)
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}
