package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Mobile-generator service
	GeneratorAPIBaseURL string

	// Auth
	JWTSecret string

	// Image codec
	MaxImageWidth int
	JPEGQuality   int

	// Server
	Port        string
	Environment string
}

func Load() (*Config, error) {
	cfg := &Config{
		GeneratorAPIBaseURL: getEnv("GENERATOR_API_BASE_URL", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),

		MaxImageWidth: getEnvInt("MAX_IMAGE_WIDTH", 1024),
		JPEGQuality:   getEnvInt("JPEG_QUALITY", 80),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.GeneratorAPIBaseURL == "" {
		return fmt.Errorf("GENERATOR_API_BASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.MaxImageWidth < 1 {
		return fmt.Errorf("MAX_IMAGE_WIDTH must be positive")
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("JPEG_QUALITY must be between 1 and 100")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
