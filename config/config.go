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
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Booking core.
	BusinessTimezone    string `mapstructure:"BUSINESS_TIMEZONE"`
	SlotOfferTTLMinutes int    `mapstructure:"SLOT_OFFER_TTL_MINUTES"`
	SlotDisplayLimit    int    `mapstructure:"SLOT_DISPLAY_LIMIT"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAssistantDB     int    `mapstructure:"REDIS_ASSISTANT_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Google integrations.
	GeminiAPIKey             string `mapstructure:"GEMINI_API_KEY"`
	GoogleServiceAccountFile string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_FILE"`
	GoogleCalendarID         string `mapstructure:"GOOGLE_CALENDAR_ID"`

	// Stripe deposits.
	StripeKey string `mapstructure:"STRIPE_KEY"`

	// Firebase staff notifications.
	FirebaseServiceAccountFile string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_FILE"`
	StaffNotifyTopic           string `mapstructure:"STAFF_NOTIFY_TOPIC"`

	// Channel webhook auth.
	WebhookToken string `mapstructure:"WEBHOOK_TOKEN"`

	// Clinic identity surfaced in FAQ answers.
	ClinicName    string `mapstructure:"CLINIC_NAME"`
	ClinicHours   string `mapstructure:"CLINIC_HOURS"`
	ClinicAddress string `mapstructure:"CLINIC_ADDRESS"`
	ClinicPhone   string `mapstructure:"CLINIC_PHONE"`
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
	viper.SetDefault("BUSINESS_TIMEZONE", "America/New_York")
	viper.SetDefault("SLOT_OFFER_TTL_MINUTES", 30)
	viper.SetDefault("SLOT_DISPLAY_LIMIT", 3)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_ASSISTANT_DB", 1)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("STAFF_NOTIFY_TOPIC", "clinic-staff")
	viper.SetDefault("CLINIC_NAME", "Glow Aesthetics & Wellness")
	viper.SetDefault("CLINIC_HOURS", "Tuesday to Saturday, 9 AM to 5 PM")
	viper.SetDefault("CLINIC_ADDRESS", "412 Harbor View Drive, Suite 210")
	viper.SetDefault("CLINIC_PHONE", "(555) 014-2200")

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
