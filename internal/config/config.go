package config

import (
	"fmt"

	"github.com/joeshaw/envdecode"
)

// Config is decoded from the process environment after godotenv has loaded .env
type Config struct {
	AppEnv     string `env:"APP_ENV,default=production"`
	ServerPort string `env:"SERVER_PORT,default=8080"`

	DB DBConfig

	JWTSecret          string `env:"JWT_SECRET_KEY,required"`
	JWTExpirationHours int64  `env:"JWT_EXPIRATION_HOURS,default=24"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS,default=10"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST,default=20"`

	// Registering with this email yields an admin account
	InitialAdminEmail string `env:"INITIAL_ADMIN_EMAIL"`
}

// DBConfig holds database connection parameters
type DBConfig struct {
	Host           string `env:"DB_HOST,required"`
	Port           string `env:"DB_PORT,default=5432"`
	User           string `env:"DB_USER,required"`
	Password       string `env:"DB_PASSWORD"`
	Name           string `env:"DB_NAME,required"`
	SSLMode        string `env:"DB_SSLMODE,default=disable"`
	ConnectRetries int    `env:"DB_CONNECT_RETRIES,default=5"`
}

// Load decodes the environment into a Config
func Load() (*Config, error) {
	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.JWTExpirationHours <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRATION_HOURS must be positive, got %d", cfg.JWTExpirationHours)
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if cfg.DB.ConnectRetries < 1 {
		cfg.DB.ConnectRetries = 1
	}
	return &cfg, nil
}

// IsDevelopment reports whether APP_ENV selects development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
