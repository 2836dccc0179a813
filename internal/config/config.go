package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session storage backends
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// Config holds all application configuration
type Config struct {
	BotToken string
	AppEnv   string
	Database DatabaseConfig
	Session  SessionConfig
	Kafka    KafkaConfig

	CatalogPath string
	ImagesDir   string
	HealthAddr  string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// SessionConfig holds conversation storage settings
type SessionConfig struct {
	Backend string
	// RedisURL is used by the redis backend only
	RedisURL string
	// IdleTimeout expires abandoned sessions; zero disables expiry
	IdleTimeout time.Duration
}

// KafkaConfig holds ticket event stream settings. No brokers disables publishing.
type KafkaConfig struct {
	Brokers     string
	TicketTopic string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	idleTimeout, err := getDuration("SESSION_IDLE_TIMEOUT", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BotToken: os.Getenv("BOT_TOKEN"),
		AppEnv:   getEnv("APP_ENV", "production"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "servicebot"),
			User:     getEnv("DB_USER", "servicebot"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Session: SessionConfig{
			Backend:     strings.ToLower(getEnv("SESSION_BACKEND", SessionBackendMemory)),
			RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),
			IdleTimeout: idleTimeout,
		},
		Kafka: KafkaConfig{
			Brokers:     os.Getenv("KAFKA_BROKERS"),
			TicketTopic: getEnv("KAFKA_TICKET_TOPIC", "service-tickets"),
		},
		CatalogPath: os.Getenv("CATALOG_PATH"),
		ImagesDir:   getEnv("IMAGES_DIR", "images"),
		HealthAddr:  lookupEnv("HEALTH_ADDR", ":8080"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	switch c.Session.Backend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		return fmt.Errorf("SESSION_BACKEND must be %q or %q, got %q", SessionBackendMemory, SessionBackendRedis, c.Session.Backend)
	}
	if c.Session.IdleTimeout < 0 {
		return fmt.Errorf("SESSION_IDLE_TIMEOUT must not be negative")
	}
	return nil
}

// IsDevelopment reports whether APP_ENV is development
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

// DatabaseURL returns the PostgreSQL URL used by migrations
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     c.Database.Host + ":" + c.Database.Port,
		Path:     "/" + c.Database.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// lookupEnv is getEnv that keeps an explicitly empty value
func lookupEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	if value == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, value, err)
	}
	return d, nil
}
