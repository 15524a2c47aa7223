package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	FrontendURL string `mapstructure:"FRONTEND_URL"`

	// Admin back-office shared secret, compared against the
	// x-admin-key header by exact string match.
	AdminAPIKey string `mapstructure:"ADMIN_API_KEY"`

	// Paystack
	PaystackSecretKey string `mapstructure:"PAYSTACK_SECRET_KEY"`

	// Redis (contact-form rate limiting)
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// R2 / S3 media storage
	R2AccountID       string `mapstructure:"R2_ACCOUNT_ID"`
	R2AccessKeyID     string `mapstructure:"R2_ACCESS_KEY_ID"`
	R2SecretAccessKey string `mapstructure:"R2_SECRET_ACCESS_KEY"`
	R2BucketName      string `mapstructure:"R2_BUCKET_NAME"`
	R2PublicURL       string `mapstructure:"R2_PUBLIC_URL"` // Custom domain
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}

	// Trim to avoid invisible mismatches when comparing the header
	AppConfig.AdminAPIKey = strings.TrimSpace(AppConfig.AdminAPIKey)

	if AppConfig.AdminAPIKey == "" {
		log.Println("ADMIN_API_KEY is empty; admin routes will reject every request")
	}
	if AppConfig.PaystackSecretKey == "" {
		log.Println("PAYSTACK_SECRET_KEY is not set; payment verification will fail")
	}
}
