package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server configuration
	Port string
	Mode string

	// Database configuration
	DatabaseURL string

	// Redis configuration
	RedisURL string

	// Stripe configuration
	StripeSecretKey     string
	StripeWebhookSecret string

	// Admin API configuration
	AdminAPIKey string

	// Brevo email configuration (receipt emails, optional)
	BrevoAPIKey    string
	BrevoFromEmail string
	BrevoFromName  string

	// Downstream purchase webhook (optional)
	PurchaseWebhookURL    string
	PurchaseWebhookSecret string

	// Cache configuration
	CouponCacheTTL time.Duration
}

// Load reads configuration from the environment. A .env file is loaded
// when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// Ignore error if .env file doesn't exist
	}

	cfg := &Config{
		Port:                  getEnv("PORT", "8080"),
		Mode:                  getEnv("GIN_MODE", "debug"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		RedisURL:              getEnv("REDIS_URL", "redis://localhost:6379/0"),
		StripeSecretKey:       getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret:   getEnv("STRIPE_WEBHOOK_SECRET", ""),
		AdminAPIKey:           getEnv("ADMIN_API_KEY", ""),
		BrevoAPIKey:           getEnv("BREVO_API_KEY", ""),
		BrevoFromEmail:        getEnv("BREVO_FROM_EMAIL", ""),
		BrevoFromName:         getEnv("BREVO_FROM_NAME", "Storefront"),
		PurchaseWebhookURL:    getEnv("PURCHASE_WEBHOOK_URL", ""),
		PurchaseWebhookSecret: getEnv("PURCHASE_WEBHOOK_SECRET", ""),
		CouponCacheTTL:        time.Duration(getEnvInt("COUPON_CACHE_TTL_SECONDS", 300)) * time.Second,
	}

	return cfg, nil
}

// Validate fails fast on missing secrets so a misconfigured instance never
// starts serving traffic.
func (c *Config) Validate() error {
	if c.StripeSecretKey == "" {
		return fmt.Errorf("STRIPE_SECRET_KEY is not set")
	}
	if c.StripeWebhookSecret == "" {
		return fmt.Errorf("STRIPE_WEBHOOK_SECRET is not set")
	}
	if c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is not set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
