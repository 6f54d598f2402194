package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	AppName              string        `env:"APP_NAME" envDefault:"LMS Identity"`
	Env                  string        `env:"ENV" envDefault:"DEV"`
	Port                 string        `env:"PORT" envDefault:"8080"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionCheckInterval time.Duration `env:"SESSION_CHECK_INTERVAL" envDefault:"60s"`
	LoginRatePerMinute   int           `env:"LOGIN_RATE_PER_MINUTE" envDefault:"30"`
	RedisAddr            string        `env:"REDIS_ADDR"`    // optional; in-memory store when empty
	RedisKeyPrefix       string        `env:"REDIS_KEY_PREFIX" envDefault:"mlms:"`
	PostgresURL          string        `env:"POSTGRES_URL"`  // optional; seeded in-memory directories when empty
	AllowedOrigins       string        `env:"ALLOWED_ORIGINS" envDefault:"*"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	if c.Port == "" {
		return ":8080"
	}
	if c.Port[0] == ':' {
		return c.Port
	}
	return ":" + c.Port
}
