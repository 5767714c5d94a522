package config

import (
	"os"
	"strconv"

	"github.com/viable-systems/vsm-pattern-engine/internal/errors"
)

// Config represents the complete engine configuration (spec.md §6 configuration surface).
type Config struct {
	Detection   DetectionConfig
	VectorStore VectorStoreConfig `validate:"required"`
}

// DetectionConfig holds the coordinator/detector tuning knobs.
type DetectionConfig struct {
	IntervalMS             int     // detection_interval, default 5000
	AnomalyThreshold       float64 // anomaly_threshold, default 0.8
	CorrelationThreshold   float64 // correlation_threshold, default 0.7
	RecursionLevels        int     // recursion_levels, default 5
	VarietyManagement      string  // variety_management, default "requisite"
	FeedbackLoops          bool    // feedback_loops, default true
	AlgedonicSignalsActive bool    // algedonic_signals, default true
}

// VectorStoreConfig holds the external vector-store adapter's connection settings.
type VectorStoreConfig struct {
	URL          string `validate:"required"`
	TimeoutMS    int
	APIKey       string
	EncoderModel string
	Dimensions   int
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	config := &Config{
		Detection:   loadDetectionConfig(),
		VectorStore: loadVectorStoreConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDetectionConfig() DetectionConfig {
	return DetectionConfig{
		IntervalMS:             getEnvIntOrDefault("DETECTION_INTERVAL_MS", 5000),
		AnomalyThreshold:       getEnvFloatOrDefault("ANOMALY_THRESHOLD", 0.8),
		CorrelationThreshold:   getEnvFloatOrDefault("CORRELATION_THRESHOLD", 0.7),
		RecursionLevels:        getEnvIntOrDefault("RECURSION_LEVELS", 5),
		VarietyManagement:      getEnvOrDefault("VARIETY_MANAGEMENT", "requisite"),
		FeedbackLoops:          getEnvBoolOrDefault("FEEDBACK_LOOPS", true),
		AlgedonicSignalsActive: getEnvBoolOrDefault("ALGEDONIC_SIGNALS", true),
	}
}

func loadVectorStoreConfig() VectorStoreConfig {
	return VectorStoreConfig{
		URL:          getEnvOrDefault("VECTOR_STORE_URL", "http://localhost:6333"),
		TimeoutMS:    getEnvIntOrDefault("VECTOR_STORE_TIMEOUT_MS", 5000),
		APIKey:       getEnvOrDefault("VECTOR_STORE_API_KEY", ""),
		EncoderModel: getEnvOrDefault("VECTOR_STORE_ENCODER_MODEL", "feature-hash-v1"),
		Dimensions:   getEnvIntOrDefault("VECTOR_STORE_DIMENSIONS", 384),
	}
}

func validateConfig(config *Config) error {
	if config.VectorStore.URL == "" {
		return errors.ConfigInvalid("vector store URL is required")
	}
	if config.VectorStore.Dimensions <= 0 {
		return errors.ConfigInvalid("vector store dimensions must be positive")
	}
	if config.Detection.RecursionLevels <= 0 {
		return errors.ConfigInvalid("recursion levels must be positive")
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
