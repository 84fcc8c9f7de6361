package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"datasentry/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	AI       AIConfig
	Analysis AnalysisConfig
	Log      LogConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds database connection settings.
// An empty URL selects the in-memory stores.
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
}

// StorageConfig holds upload storage settings
type StorageConfig struct {
	UploadDir   string
	MaxFileSize int64
}

// AIConfig holds settings for the OpenAI and Ollama collaborators
type AIConfig struct {
	Enabled       bool
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
	OllamaURL     string
	OllamaModel   string
	Timeout       time.Duration
	Temperature   float64
}

// AnalysisConfig holds pipeline settings
type AnalysisConfig struct {
	Concurrency     int
	GroundTruthPath string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// UsesDatabase reports whether a persistent store is configured
func (c *Config) UsesDatabase() bool {
	return strings.TrimSpace(c.Database.URL) != ""
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:   *loadServerConfig(),
		Database: *loadDatabaseConfig(),
		Storage:  *loadStorageConfig(),
		AI:       *loadAIConfig(),
		Analysis: *loadAnalysisConfig(),
		Log:      LogConfig{Level: getEnvOrDefault("LOG_LEVEL", "INFO")},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Default returns the configuration used when no environment is set
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080", GinMode: "release"},
		Database: DatabaseConfig{MaxOpenConns: 10},
		Storage:  StorageConfig{UploadDir: "uploads", MaxFileSize: 10 * 1024 * 1024},
		AI: AIConfig{
			Enabled:       true,
			OpenAIModel:   "gpt-3.5-turbo",
			OpenAIBaseURL: "https://api.openai.com/v1",
			OllamaURL:     "http://localhost:11434",
			OllamaModel:   "tinyllama",
			Timeout:       10 * time.Second,
			Temperature:   0.3,
		},
		Analysis: AnalysisConfig{Concurrency: 8},
		Log:      LogConfig{Level: "INFO"},
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URL:          os.Getenv("DATABASE_URL"),
		MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 10),
	}
}

func loadStorageConfig() *StorageConfig {
	return &StorageConfig{
		UploadDir:   getEnvOrDefault("UPLOAD_DIR", "uploads"),
		MaxFileSize: getEnvInt64OrDefault("MAX_FILE_SIZE", 10*1024*1024),
	}
}

func loadAIConfig() *AIConfig {
	return &AIConfig{
		Enabled:       getEnvBoolOrDefault("AI_ENABLED", true),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getEnvOrDefault("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAIBaseURL: getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OllamaURL:     getEnvOrDefault("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:   getEnvOrDefault("OLLAMA_MODEL", "tinyllama"),
		Timeout:       getEnvDurationOrDefault("AI_TIMEOUT", 10*time.Second),
		Temperature:   getEnvFloatOrDefault("AI_TEMPERATURE", 0.3),
	}
}

func loadAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		Concurrency:     getEnvIntOrDefault("ANALYSIS_CONCURRENCY", 8),
		GroundTruthPath: getEnvOrDefault("GROUND_TRUTH_PATH", ""),
	}
}

func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Server.Port) == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Storage.MaxFileSize <= 0 {
		return errors.ConfigInvalid("MAX_FILE_SIZE must be positive")
	}
	if config.Analysis.Concurrency < 1 {
		return errors.ConfigInvalid("ANALYSIS_CONCURRENCY must be at least 1")
	}
	if config.AI.Timeout <= 0 {
		return errors.ConfigInvalid("AI_TIMEOUT must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
