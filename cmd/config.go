package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config carries everything the application needs to start.
// Values come from the environment, optionally seeded from a .env file.
type Config struct {
	HTTPPort   string `validate:"required"`
	DBHost     string `validate:"required"`
	DBPort     string `validate:"required"`
	DBUser     string `validate:"required"`
	DBPassword string `validate:"required"`
	DBName     string `validate:"required"`
	DBSslMode  string `validate:"required"`

	KafkaBrokers         string `validate:"required"`
	KafkaOrderEventTopic string `validate:"required"`

	StaleOrderThreshold time.Duration `validate:"gt=0"`
}

// LoadConfig reads the configuration from the environment. A missing
// .env file is fine; explicit environment variables always win.
func LoadConfig() (Config, error) {
	_ = godotenv.Load(".env")

	threshold, err := time.ParseDuration(envOr("STALE_ORDER_THRESHOLD", "10m"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid STALE_ORDER_THRESHOLD: %w", err)
	}

	config := Config{
		HTTPPort:             envOr("HTTP_PORT", "8080"),
		DBHost:               envOr("DB_HOST", "localhost"),
		DBPort:               envOr("DB_PORT", "5432"),
		DBUser:               os.Getenv("DB_USER"),
		DBPassword:           os.Getenv("DB_PASSWORD"),
		DBName:               os.Getenv("DB_NAME"),
		DBSslMode:            envOr("DB_SSLMODE", "disable"),
		KafkaBrokers:         envOr("KAFKA_BROKERS", "localhost:9092"),
		KafkaOrderEventTopic: envOr("KAFKA_ORDER_EVENT_TOPIC", "marketplace.order-events"),
		StaleOrderThreshold:  threshold,
	}

	if err := validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// DSN builds the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
