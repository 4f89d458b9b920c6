package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Shared secret for the admin dashboard.
	AdminKey string `mapstructure:"ADMIN_KEY"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB     int    `mapstructure:"REDIS_CACHE_DB"`
	RedisTaskQueueDB int    `mapstructure:"REDIS_TASK_QUEUE_DB"`

	// Third-party providers. Empty keys disable the provider.
	LocationIQAPIKey string        `mapstructure:"LOCATIONIQ_API_KEY"`
	OpenRouteAPIKey  string        `mapstructure:"OPENROUTE_API_KEY"`
	StripeSecretKey  string        `mapstructure:"STRIPE_SECRET_KEY"`
	HTTPTimeout      time.Duration `mapstructure:"HTTP_CLIENT_TIMEOUT"`
	RouteCacheTTL    time.Duration `mapstructure:"ROUTE_CACHE_TTL"`

	// Google Calendar sync.
	GoogleServiceAccountKeyPath string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_KEY_PATH"`
	GoogleCalendarID            string `mapstructure:"GOOGLE_CALENDAR_ID"`

	// Business hours.
	BusinessTimezone    string `mapstructure:"BUSINESS_TIMEZONE"`
	SlotStartHour       int    `mapstructure:"SLOT_START_HOUR"`
	SlotEndHour         int    `mapstructure:"SLOT_END_HOUR"`
	SlotIntervalMinutes int    `mapstructure:"SLOT_INTERVAL_MINUTES"`

	// Fare policy.
	StandardHourlyRate  float64 `mapstructure:"STANDARD_HOURLY_RATE"`
	StandardMinimumFare float64 `mapstructure:"STANDARD_MINIMUM_FARE"`
	AirportHourlyRate   float64 `mapstructure:"AIRPORT_HOURLY_RATE"`
	AirportMinimumFare  float64 `mapstructure:"AIRPORT_MINIMUM_FARE"`
	BaseFare            float64 `mapstructure:"BASE_FARE"`
	PerPassengerRate    float64 `mapstructure:"PER_PASSENGER_RATE"`
	AirportSurcharge    float64 `mapstructure:"AIRPORT_SURCHARGE"`
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

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "rideconnect")
	v.SetDefault("ADMIN_KEY", "")

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_TASK_QUEUE_DB", 1)

	v.SetDefault("LOCATIONIQ_API_KEY", "")
	v.SetDefault("OPENROUTE_API_KEY", "")
	v.SetDefault("STRIPE_SECRET_KEY", "")
	v.SetDefault("HTTP_CLIENT_TIMEOUT", "10s")
	v.SetDefault("ROUTE_CACHE_TTL", "24h")

	v.SetDefault("GOOGLE_SERVICE_ACCOUNT_KEY_PATH", "")
	v.SetDefault("GOOGLE_CALENDAR_ID", "")

	v.SetDefault("BUSINESS_TIMEZONE", "America/Los_Angeles")
	v.SetDefault("SLOT_START_HOUR", 15)
	v.SetDefault("SLOT_END_HOUR", 23)
	v.SetDefault("SLOT_INTERVAL_MINUTES", 15)

	v.SetDefault("STANDARD_HOURLY_RATE", 60.0)
	v.SetDefault("STANDARD_MINIMUM_FARE", 16.0)
	v.SetDefault("AIRPORT_HOURLY_RATE", 80.0)
	v.SetDefault("AIRPORT_MINIMUM_FARE", 30.0)
	v.SetDefault("BASE_FARE", 0.0)
	v.SetDefault("PER_PASSENGER_RATE", 5.0)
	v.SetDefault("AIRPORT_SURCHARGE", 0.0)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// BusinessLocation resolves the configured business timezone, falling back to UTC.
func BusinessLocation() *time.Location {
	loc, err := time.LoadLocation(AppConfig.BusinessTimezone)
	if err != nil {
		log.Printf("Unknown BUSINESS_TIMEZONE %q, using UTC", AppConfig.BusinessTimezone)
		return time.UTC
	}
	return loc
}
