package config

import (
	"os"
	"strings"
)

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	BasicPriceID  string
	ProPriceID    string
	ElitePriceID  string
}

type EmailConfig struct {
	APIKey      string
	FromAddress string
	FromName    string
}

type Config struct {
	Port           string
	ClientURL      string
	AllowedOrigins string
	DatabaseURL    string
	Stripe         StripeConfig
	Email          EmailConfig
}

func LoadConfig() *Config {
	cfg := &Config{
		Port:        getEnv("PORT", "3001"),
		ClientURL:   getEnv("CLIENT_URL", "http://localhost:5173"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}

	cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")
	cfg.Stripe.WebhookSecret = os.Getenv("STRIPE_WEBHOOK_SECRET")
	cfg.Stripe.BasicPriceID = os.Getenv("STRIPE_BASIC_PRICE_ID")
	cfg.Stripe.ProPriceID = os.Getenv("STRIPE_PRO_PRICE_ID")
	cfg.Stripe.ElitePriceID = os.Getenv("STRIPE_ELITE_PRICE_ID")

	cfg.Email.APIKey = os.Getenv("RESEND_API_KEY")
	cfg.Email.FromAddress = getEnv("EMAIL_FROM_ADDRESS", "billing@creatorrank.app")
	cfg.Email.FromName = getEnv("EMAIL_FROM_NAME", "CreatorRank")

	// Comma separated list, defaults to the client URL
	cfg.AllowedOrigins = getEnv("ALLOWED_ORIGINS", cfg.ClientURL)

	return cfg
}

// Origins returns the allowed CORS origins joined the way Fiber expects them.
func (c *Config) Origins() string {
	parts := strings.Split(c.AllowedOrigins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, ", ")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
