package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisPortalDB int    `mapstructure:"REDIS_PORTAL_DB"`

	// Stripe configuration. PlatformFeeRate is the fraction of each charge
	// retained by the platform (e.g. 0.035 for 3.5%).
	StripeKey           string  `mapstructure:"STRIPE_KEY"`
	StripeWebhookSecret string  `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	PlatformFeeRate     float64 `mapstructure:"PLATFORM_FEE_RATE"`

	// Default deposit percentage applied when a booking is created without an
	// explicit deposit amount (e.g. 0.25 for 25%).
	DefaultDepositRate float64 `mapstructure:"DEFAULT_DEPOSIT_RATE"`

	// Gemini API key for contract drafting.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// SMTP configuration for transactional email.
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     string `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFromName string `mapstructure:"SMTP_FROM_NAME"`

	// Shared secret expected on the external cron trigger endpoints.
	CronSecret string `mapstructure:"CRON_SECRET"`

	// Base URL for client portal links embedded in emails.
	PortalBaseURL string `mapstructure:"PORTAL_BASE_URL"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_PORTAL_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("PLATFORM_FEE_RATE", 0.035)
	viper.SetDefault("DEFAULT_DEPOSIT_RATE", 0.25)
	viper.SetDefault("PORTAL_BASE_URL", "https://app.shotfolio.io/portal")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
