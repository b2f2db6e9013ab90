package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	GinMode        string
	MongoURI       string
	MongoDatabase  string
	RabbitMQURI    string
	RabbitMQExch   string
	LLMBaseURL     string
	LLMAPIKey      string
	LLMModel       string
	LLMTimeout     time.Duration
	JWTSecret      string
	ServiceName    string
	ServiceVersion string
}

// Load reads configuration from the environment, with .env support for
// local development.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Port:           getEnvOrDefault("PORT", "8080"),
		GinMode:        getEnvOrDefault("GIN_MODE", "debug"),
		MongoURI:       getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:  getEnvOrDefault("MONGO_DATABASE", "adaptive_learning"),
		RabbitMQURI:    os.Getenv("RABBITMQ_URI"),
		RabbitMQExch:   os.Getenv("RABBITMQ_EXCHANGE"),
		LLMBaseURL:     getEnvOrDefault("LLM_BASE_URL", "http://localhost:11434/v1"),
		LLMAPIKey:      getEnvOrDefault("LLM_API_KEY", ""),
		LLMModel:       getEnvOrDefault("LLM_MODEL", "gemini-1.5-flash"),
		LLMTimeout:     getDurationOrDefault("LLM_TIMEOUT", 120*time.Second),
		JWTSecret:      getEnvOrDefault("JWT_SECRET", "your-jwt-secret-key"),
		ServiceName:    getEnvOrDefault("SERVICE_NAME", "quizgen-service"),
		ServiceVersion: getEnvOrDefault("SERVICE_VERSION", "1.0.0"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("invalid %s %q, using default %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
