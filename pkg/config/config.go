package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	GinMode             string
	DBDriver            string
	DatabaseURL         string
	FirebaseCredentials string
	GoogleProjectID     string
	GoogleCredentials   string
	PubSubTopic         string
	InterestPrefix      string
	ProviderTimeout     time.Duration
	ReconcileInterval   time.Duration
	JWTSecret           string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	providerTimeout := 10 * time.Second
	if t := os.Getenv("PROVIDER_TIMEOUT"); t != "" {
		if parsed, err := time.ParseDuration(t); err == nil && parsed > 0 {
			providerTimeout = parsed
		}
	}

	// Zero disables the reconcile scheduler
	var reconcileInterval time.Duration
	if t := os.Getenv("RECONCILE_INTERVAL"); t != "" {
		if parsed, err := time.ParseDuration(t); err == nil && parsed > 0 {
			reconcileInterval = parsed
		}
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		GinMode:             getEnv("GIN_MODE", "release"),
		DBDriver:            getEnv("DB_DRIVER", "postgres"),
		DatabaseURL:         getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=interests port=5432 sslmode=disable"),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
		GoogleProjectID:     getEnv("GOOGLE_PROJECT_ID", ""),
		GoogleCredentials:   getEnv("GOOGLE_CREDENTIALS", ""),
		PubSubTopic:         getEnv("PUBSUB_TOPIC", "subscription-events"),
		InterestPrefix:      getEnv("INTEREST_PREFIX", "App.Seller"),
		ProviderTimeout:     providerTimeout,
		ReconcileInterval:   reconcileInterval,
		JWTSecret:           getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
