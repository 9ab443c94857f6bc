package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "SERVER_PORT", "DB_DRIVER", "RABBITMQ_URL", "REDIS_ADDR", "SESSION_IDLE_TIMEOUT", "RATE_LIMIT_WINDOW"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Empty(t, cfg.RabbitURL)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 10*time.Second, cfg.SessionIdleTimeout)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("RATE_LIMIT_REQUESTS", "not-a-number")
	t.Setenv("SESSION_IDLE_TIMEOUT", "30s")

	cfg := Load()

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 20, cfg.RateLimitRequests)
	assert.Equal(t, 30*time.Second, cfg.SessionIdleTimeout)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBDriver:   "postgres",
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "theatre",
		DBPassword: "secret",
		DBName:     "theatre_db",
		DBSSLMode:  "disable",
	}
	assert.Equal(t, "host=db port=5432 user=theatre password=secret dbname=theatre_db sslmode=disable TimeZone=UTC", cfg.DSN())

	cfg.DBDriver = "mysql"
	cfg.DBPort = "3306"
	assert.Equal(t, "theatre:secret@tcp(db:3306)/theatre_db?charset=utf8mb4&parseTime=true&loc=UTC", cfg.DSN())
}
