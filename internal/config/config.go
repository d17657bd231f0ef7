// Package config provides configuration loading and validation for the service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config represents the application configuration loaded from environment
// variables. Call Load to populate it; missing values fall back to defaults.
type Config struct {
	// Database
	DatabaseURL string

	// Uploads
	MaxFileSizeMB     int
	AllowedExtensions []string

	// Matching
	EmbeddingModel      string
	SimilarityThreshold float64

	// Embedding provider
	APIKey string

	// Logging
	LogLevel string
	LogJSON  bool
}

// Load reads configuration from environment variables.
// DATABASE_URL is required; everything else has a default.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		EmbeddingModel:      envOrDefault("EMBEDDING_MODEL", "text-embedding-004"),
		APIKey:              os.Getenv("GEMINI_API_KEY"),
		LogLevel:            envOrDefault("LOG_LEVEL", "info"),
		LogJSON:             strings.EqualFold(os.Getenv("LOG_JSON"), "true"),
		SimilarityThreshold: 0.5,
		MaxFileSizeMB:       10,
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	if sizeStr := os.Getenv("MAX_FILE_SIZE_MB"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_FILE_SIZE_MB: %v", err)
		}
		cfg.MaxFileSizeMB = size
	}

	if thresholdStr := os.Getenv("SIMILARITY_THRESHOLD"); thresholdStr != "" {
		threshold, err := strconv.ParseFloat(thresholdStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SIMILARITY_THRESHOLD: %v", err)
		}
		cfg.SimilarityThreshold = threshold
	}

	extensions := envOrDefault("ALLOWED_EXTENSIONS", "pdf,docx")
	for _, ext := range strings.Split(extensions, ",") {
		ext = strings.ToLower(strings.TrimSpace(ext))
		ext = strings.TrimPrefix(ext, ".")
		if ext != "" {
			cfg.AllowedExtensions = append(cfg.AllowedExtensions, ext)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// normalize validates the configuration.
func (c *Config) normalize() error {
	if c.MaxFileSizeMB < 1 {
		return fmt.Errorf("MAX_FILE_SIZE_MB must be at least 1, got: %d", c.MaxFileSizeMB)
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("SIMILARITY_THRESHOLD must be in [0,1], got: %g", c.SimilarityThreshold)
	}
	if len(c.AllowedExtensions) == 0 {
		return fmt.Errorf("ALLOWED_EXTENSIONS cannot be empty")
	}
	return nil
}

// MaxFileSizeBytes returns the upload size limit in bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB) * 1024 * 1024
}

// ExtensionAllowed reports whether the given file extension (with or without
// a leading dot) is accepted for upload.
func (c *Config) ExtensionAllowed(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, allowed := range c.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
