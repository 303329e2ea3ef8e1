package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	Database    DatabaseConfig
	Checkout    CheckoutConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// CheckoutConfig holds pricing defaults applied when zone resolution fails.
type CheckoutConfig struct {
	DefaultShippingPrice    int64
	DefaultDeliveryEstimate string
	PromoCacheTTL           time.Duration
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "checkout")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DEFAULT_SHIPPING_PRICE", 2000)
	viper.SetDefault("DEFAULT_DELIVERY_ESTIMATE", "3-7 jours")
	viper.SetDefault("PROMO_CACHE_TTL", "30s")

	viper.AutomaticEnv()

	// .env is optional; env vars win either way
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	ttl, err := time.ParseDuration(getEnvOrViper("PROMO_CACHE_TTL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROMO_CACHE_TTL: %w", err)
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "checkout"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Checkout: CheckoutConfig{
			DefaultShippingPrice:    viper.GetInt64("DEFAULT_SHIPPING_PRICE"),
			DefaultDeliveryEstimate: getEnvOrViper("DEFAULT_DELIVERY_ESTIMATE", "3-7 jours"),
			PromoCacheTTL:           ttl,
		},
	}

	if cfg.Checkout.DefaultShippingPrice < 0 {
		return nil, fmt.Errorf("DEFAULT_SHIPPING_PRICE must not be negative")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
