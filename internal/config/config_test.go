package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "SERVER_PORT", "DB_DRIVER", "DATABASE_DSN", "MYSQL_DSN", "TOKEN_TTL", "COOKIE_SECURE", "RESET_DB"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Contains(t, cfg.DatabaseDSN, "tcp(localhost:3306)")
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.CookieSecure)
	assert.False(t, cfg.ResetDB)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DATABASE_DSN", "file:toilets.db")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "file:toilets.db", cfg.DatabaseDSN)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoadFallsBackOnMalformedValues(t *testing.T) {
	t.Setenv("TOKEN_TTL", "soon")
	t.Setenv("REDIS_DB", "x")
	t.Setenv("COOKIE_SECURE", "maybe")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.False(t, cfg.CookieSecure)
}

func TestLoadMySQLDSNFallback(t *testing.T) {
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("MYSQL_DSN", "root:pw@tcp(db:3306)/toilets")

	assert.Equal(t, "root:pw@tcp(db:3306)/toilets", Load().DatabaseDSN)
}
