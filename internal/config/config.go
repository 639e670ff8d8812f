package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/seeacid/stardeadIA/pkg/config"
	"github.com/seeacid/stardeadIA/pkg/database"
	"github.com/seeacid/stardeadIA/pkg/tracing"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Redis (cart snapshots)
	Redis database.RedisConfig

	// Cart TTL in hours (default: 7 days)
	CartTTLHours int `env:"CART_TTL_HOURS" envDefault:"168"`

	// Simulated payment processing delay in milliseconds.
	PaymentDelayMillis int `env:"PAYMENT_DELAY_MS" envDefault:"2000"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Per-IP rate limiting; zero disables it.
	RateLimitRPS   int `env:"RATE_LIMIT_RPS" envDefault:"50"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"100"`

	// Tracing
	Tracing tracing.Config
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CartTTL returns the cart snapshot TTL as a duration.
func (c *Config) CartTTL() time.Duration {
	return time.Duration(c.CartTTLHours) * time.Hour
}

// PaymentDelay returns the simulated payment delay as a duration.
func (c *Config) PaymentDelay() time.Duration {
	return time.Duration(c.PaymentDelayMillis) * time.Millisecond
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.CartTTLHours < 1 {
		return fmt.Errorf("cart TTL must be at least one hour, got %d", c.CartTTLHours)
	}
	if c.PaymentDelayMillis < 0 {
		return fmt.Errorf("payment delay must not be negative: %d", c.PaymentDelayMillis)
	}
	return nil
}
