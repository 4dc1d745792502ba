package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"storefront-be/internal/pricing"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	DBHost         string `env:"DB_HOST,required,notEmpty"`
	DBUser         string `env:"DB_USER"`
	DBPassword     string `env:"DB_PASSWORD"`
	DBName         string `env:"DB_NAME"`
	DBPort         string `env:"DB_PORT" envDefault:"5432"`
	DBSSLMode      string `env:"DB_SSLMODE" envDefault:"disable"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`

	AppPort string `env:"APP_PORT" envDefault:"8080"`
	AppEnv  string `env:"APP_ENV" envDefault:"development"`

	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`

	CORSAllowedOrigin string `env:"CORS_ALLOWED_ORIGIN" envDefault:"http://localhost:3000"`

	// Shipping rule; amounts are decimal strings in store currency.
	FreeShippingThreshold string `env:"FREE_SHIPPING_THRESHOLD" envDefault:"1000"`
	FlatShippingFee       string `env:"FLAT_SHIPPING_FEE" envDefault:"50"`

	InternalSecretKey string `env:"INTERNAL_SECRET_KEY"`
}

// Load reads an optional .env file and parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Environment variables not loaded properly: %v", err)
	}
	return cfg
}

// PricingPolicy parses the shipping rule into a pricing policy.
func (c *Config) PricingPolicy() (pricing.Policy, error) {
	threshold, err := decimal.NewFromString(c.FreeShippingThreshold)
	if err != nil {
		return pricing.Policy{}, fmt.Errorf("FREE_SHIPPING_THRESHOLD: %w", err)
	}
	fee, err := decimal.NewFromString(c.FlatShippingFee)
	if err != nil {
		return pricing.Policy{}, fmt.Errorf("FLAT_SHIPPING_FEE: %w", err)
	}
	if threshold.IsNegative() || fee.IsNegative() {
		return pricing.Policy{}, errors.New("shipping amounts must not be negative")
	}

	return pricing.Policy{FreeShippingThreshold: threshold, FlatShippingFee: fee}, nil
}
