// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Turn handling
	TurnTimeout  time.Duration
	HistoryTurns int
	// Timezone for visit dates and relative "now" resolution. Only UTC is
	// supported; the value is explicit so the choice is visible in config.
	Timezone string

	// PostgreSQL (plan store)
	PostgresDSN string

	// MongoDB (conversation store)
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// LLM collaborator
	LLMBaseURL     string
	LLMAPIKey      string
	LLMModel       string
	LLMMaxTokens   int
	LLMTemperature float64

	// Maps collaborator
	MapsBaseURL   string
	MapsAPIKey    string
	MapsRateLimit int
	MapsCacheTTL  time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 60)) * time.Second,

		TurnTimeout:  time.Duration(getEnvAsInt("TURN_TIMEOUT", 30)) * time.Second,
		HistoryTurns: getEnvAsInt("HISTORY_TURNS", 6),
		Timezone:     getEnv("TIMEZONE", "UTC"),

		PostgresDSN: getEnv("POSTGRES_DSN", "host=localhost user=ecomovex dbname=ecomovex port=5432 sslmode=disable"),

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "ecomovex"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		LLMBaseURL:     getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMAPIKey:      getEnv("LLM_API_KEY", ""),
		LLMModel:       getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMMaxTokens:   getEnvAsInt("LLM_MAX_TOKENS", 800),
		LLMTemperature: getEnvAsFloat("LLM_TEMPERATURE", 0.7),

		MapsBaseURL:   getEnv("MAPS_BASE_URL", "https://maps.googleapis.com/maps/api"),
		MapsAPIKey:    getEnv("MAPS_API_KEY", ""),
		MapsRateLimit: getEnvAsInt("MAPS_RATE_LIMIT", 10),
		MapsCacheTTL:  time.Duration(getEnvAsInt("MAPS_CACHE_TTL", 120)) * time.Second,
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}
