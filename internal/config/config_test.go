package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"BOT_TOKEN", "APP_ENV",
	"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
	"SESSION_BACKEND", "REDIS_URL", "SESSION_IDLE_TIMEOUT",
	"KAFKA_BROKERS", "KAFKA_TICKET_TOPIC",
	"CATALOG_PATH", "IMAGES_DIR", "HEALTH_ADDR",
}

// clearEnv unsets every config variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetDuration(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		expected  time.Duration
		expectErr bool
	}{
		{name: "unset uses default", value: "", expected: time.Hour},
		{name: "zero disables", value: "0", expected: 0},
		{name: "minutes", value: "90m", expected: 90 * time.Minute},
		{name: "invalid", value: "tomorrow", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)

			d, err := getDuration("TEST_DURATION", time.Hour)

			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, dsn)
}

func TestConfig_DatabaseURL(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "db",
			Port:     "5432",
			User:     "bot",
			Password: "p@ss word",
			Name:     "servicebot",
		},
	}

	assert.Equal(t, "postgres://bot:p%40ss%20word@db:5432/servicebot?sslmode=disable", cfg.DatabaseURL())
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name          string
		env           map[string]string
		expectedError string
	}{
		{
			name:          "missing bot token",
			env:           map[string]string{"DB_PASSWORD": "secret"},
			expectedError: "BOT_TOKEN is required",
		},
		{
			name:          "missing db password",
			env:           map[string]string{"BOT_TOKEN": "token"},
			expectedError: "DB_PASSWORD is required",
		},
		{
			name:          "unknown session backend",
			env:           map[string]string{"BOT_TOKEN": "token", "DB_PASSWORD": "secret", "SESSION_BACKEND": "memcached"},
			expectedError: "SESSION_BACKEND",
		},
		{
			name:          "invalid idle timeout",
			env:           map[string]string{"BOT_TOKEN": "token", "DB_PASSWORD": "secret", "SESSION_IDLE_TIMEOUT": "soon"},
			expectedError: "SESSION_IDLE_TIMEOUT",
		},
		{
			name:          "negative idle timeout",
			env:           map[string]string{"BOT_TOKEN": "token", "DB_PASSWORD": "secret", "SESSION_IDLE_TIMEOUT": "-1h"},
			expectedError: "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.AppEnv)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, SessionBackendMemory, cfg.Session.Backend)
	assert.Equal(t, "redis://localhost:6379", cfg.Session.RedisURL)
	assert.Equal(t, 24*time.Hour, cfg.Session.IdleTimeout)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "service-tickets", cfg.Kafka.TicketTopic)
	assert.Empty(t, cfg.CatalogPath)
	assert.Equal(t, "images", cfg.ImagesDir)
	assert.Equal(t, ":8080", cfg.HealthAddr)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("APP_ENV", "development")
	t.Setenv("SESSION_BACKEND", "Redis")
	t.Setenv("SESSION_IDLE_TIMEOUT", "0")
	t.Setenv("KAFKA_BROKERS", "kafka:9092")
	t.Setenv("HEALTH_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, SessionBackendRedis, cfg.Session.Backend)
	assert.Zero(t, cfg.Session.IdleTimeout)
	assert.Equal(t, "kafka:9092", cfg.Kafka.Brokers)
	assert.Empty(t, cfg.HealthAddr)
}
