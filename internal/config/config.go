package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL     string
	RedisURL        string
	JWTSecret       string
	JWTAlgorithm    string
	JWTExpiry       time.Duration
	AnthropicAPIKey string
	FrontendOrigin  string
	ServerPort      string
	Environment     string

	// Rate limiting (auth endpoints)
	RateLimitMaxRequests int
	RateLimitWindow      time.Duration
	RateLimitBlockTime   time.Duration
}

func Load() *Config {
	// Try to load .env file, but don't fail if it doesn't exist
	// (containers use environment variables directly)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	cfg := &Config{
		DatabaseURL:     NormalizeDatabaseURL(os.Getenv("DATABASE_URL")),
		RedisURL:        os.Getenv("REDIS_URL"),
		JWTSecret:       secret,
		JWTAlgorithm:    getEnv("JWT_ALGORITHM", "HS256"),
		JWTExpiry:       getEnvAsDuration("JWT_EXPIRY", "30m"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		FrontendOrigin:  getEnv("FRONTEND_ORIGIN", "http://localhost:3000"),
		ServerPort:      getEnv("SERVER_PORT", ":8000"),
		Environment:     getEnv("ENVIRONMENT", "development"),

		RateLimitMaxRequests: getEnvAsInt("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitWindow:      getEnvAsDuration("RATE_LIMIT_WINDOW", "1m"),
		RateLimitBlockTime:   getEnvAsDuration("RATE_LIMIT_BLOCK_TIME", "5m"),
	}

	return cfg
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// NormalizeDatabaseURL rewrites SQLAlchemy-style driver schemes
// (postgresql+asyncpg://, postgresql://) to the plain postgres:// scheme
// the pgx driver understands.
func NormalizeDatabaseURL(url string) string {
	for _, prefix := range []string{"postgresql+asyncpg://", "postgresql://"} {
		if strings.HasPrefix(url, prefix) {
			return "postgres://" + strings.TrimPrefix(url, prefix)
		}
	}
	return url
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvAsInt retrieves environment variable as int with default value
func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid %s value, using default: %d", key, defaultVal)
		return defaultVal
	}
	return val
}

// getEnvAsDuration retrieves environment variable as duration with default value
func getEnvAsDuration(key string, defaultVal string) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		valStr = defaultVal
	}
	duration, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Invalid %s value, using default: %s", key, defaultVal)
		duration, _ = time.ParseDuration(defaultVal)
	}
	return duration
}
