package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	AppName      string
	Env          string
	ServerPort   string
	DBDriver     string
	DatabaseDSN  string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	JWTSecret    string
	TokenTTL     time.Duration
	CookieDomain string
	CookieSecure bool
	SwaggerHost  string
	ResetDB      bool
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		AppName:      getEnv("APP_NAME", "toilet-finder"),
		Env:          getEnv("APP_ENV", "development"),
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		DBDriver:     strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DatabaseDSN:  getEnv("DATABASE_DSN", getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/toilets?charset=utf8mb4&parseTime=True&loc=UTC")),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
		JWTSecret:    getEnv("JWT_SECRET", "change-me"),
		TokenTTL:     getEnvDuration("TOKEN_TTL", 24*time.Hour),
		CookieDomain: os.Getenv("COOKIE_DOMAIN"),
		CookieSecure: getEnvBool("COOKIE_SECURE", false),
		SwaggerHost:  os.Getenv("SWAGGER_HOST"),
		ResetDB:      getEnvBool("RESET_DB", false),
	}
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
