package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Stripe configuration.
	StripeKey          string `mapstructure:"STRIPE_SECRET_KEY"`
	CheckoutSuccessURL string `mapstructure:"CHECKOUT_SUCCESS_URL"`
	CheckoutCancelURL  string `mapstructure:"CHECKOUT_CANCEL_URL"`

	// Cloudinary connection string; absence disables the photo upload endpoint.
	CloudinaryURL string `mapstructure:"CLOUDINARY_URL"`

	// Calendar/mail service credentials; absence of any disables the
	// calendar-backed endpoints.
	CalendarTenantID     string `mapstructure:"CALENDAR_TENANT_ID"`
	CalendarClientID     string `mapstructure:"CALENDAR_CLIENT_ID"`
	CalendarClientSecret string `mapstructure:"CALENDAR_CLIENT_SECRET"`
	BookingMailbox       string `mapstructure:"BOOKING_MAILBOX"`
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

	// Set default values. Credentials default to empty; presence is what
	// toggles each adapter, the values themselves are never validated here.
	viper.SetDefault("APP_PORT", "3000")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("STRIPE_SECRET_KEY", "")
	viper.SetDefault("CHECKOUT_SUCCESS_URL", "https://example.com/booking/success")
	viper.SetDefault("CHECKOUT_CANCEL_URL", "https://example.com/booking/cancelled")
	viper.SetDefault("CLOUDINARY_URL", "")
	viper.SetDefault("CALENDAR_TENANT_ID", "")
	viper.SetDefault("CALENDAR_CLIENT_ID", "")
	viper.SetDefault("CALENDAR_CLIENT_SECRET", "")
	viper.SetDefault("BOOKING_MAILBOX", "")

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
