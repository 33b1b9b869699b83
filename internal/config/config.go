// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	ReviewAPI   ReviewAPIConfig
	CORS        CORSConfig
	I18n        I18nConfig
	Log         LogConfig
	Metrics     MetricsConfig
	Submission  SubmissionConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type ReviewAPIConfig struct {
	BaseURL             string
	Timeout             int // in seconds, 0 disables the client timeout
	BreakerEnabled      bool
	BreakerTimeout      int // in seconds the breaker stays open
	BreakerMinRequests  uint32
	BreakerFailureRatio float64
}

type CORSConfig struct {
	AllowedOrigins []string
}

type I18nConfig struct {
	DefaultLocale string
}

type LogConfig struct {
	Level  string
	Format string
}

type MetricsConfig struct {
	Enabled bool
}

type SubmissionConfig struct {
	TokenTTL int // in minutes
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		ReviewAPI: ReviewAPIConfig{
			BaseURL:             getEnv("REVIEW_API_BASE_URL", "http://localhost:3000"),
			Timeout:             getEnvAsInt("REVIEW_API_TIMEOUT", 10),
			BreakerEnabled:      getEnvAsBool("REVIEW_API_BREAKER_ENABLED", true),
			BreakerTimeout:      getEnvAsInt("REVIEW_API_BREAKER_TIMEOUT", 30),
			BreakerMinRequests:  uint32(getEnvAsInt("REVIEW_API_BREAKER_MIN_REQUESTS", 5)),
			BreakerFailureRatio: getEnvAsFloat("REVIEW_API_BREAKER_FAILURE_RATIO", 0.5),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", ""),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool("METRICS_ENABLED", true),
		},
		Submission: SubmissionConfig{
			TokenTTL: getEnvAsInt("SUBMISSION_TOKEN_TTL", 30),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.ReviewAPI.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("review API base URL %q must be an absolute URL", c.ReviewAPI.BaseURL)
	}

	if c.ReviewAPI.Timeout < 0 {
		return fmt.Errorf("review API timeout must not be negative")
	}

	if c.ReviewAPI.BreakerFailureRatio <= 0 || c.ReviewAPI.BreakerFailureRatio > 1 {
		return fmt.Errorf("breaker failure ratio must be in (0, 1]")
	}

	if c.Submission.TokenTTL <= 0 {
		return fmt.Errorf("submission token TTL must be positive")
	}

	return nil
}

// TokenTTLDuration returns how long a rendered form token stays redeemable.
func (s SubmissionConfig) TokenTTLDuration() time.Duration {
	return time.Duration(s.TokenTTL) * time.Minute
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
