package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `json:"server"`
	Detector DetectorConfig `json:"detector"`
}

// ServerConfig holds configuration for the HTTP server
type ServerConfig struct {
	Addr            string   `json:"addr"`
	MaxUploadBytes  int64    `json:"max_upload_bytes"`
	AllowedOrigins  []string `json:"allowed_origins"`
	ReadTimeoutSec  int      `json:"read_timeout_sec"`
	WriteTimeoutSec int      `json:"write_timeout_sec"`
}

// DetectorConfig holds configuration for the material scan
type DetectorConfig struct {
	Parallel         bool `json:"parallel"`
	MaxScanDimension int  `json:"max_scan_dimension"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":5000",
			MaxUploadBytes:  10 << 20,
			AllowedOrigins:  []string{"*"},
			ReadTimeoutSec:  30,
			WriteTimeoutSec: 30,
		},
		Detector: DetectorConfig{
			Parallel:         false,
			MaxScanDimension: 0,
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides configuration values from environment variables.
// Unset variables leave the current values untouched.
func (c *Config) ApplyEnv() {
	c.Server.Addr = getEnv("WASTESCAN_ADDR", c.Server.Addr)
	c.Server.MaxUploadBytes = getEnvAsInt64("WASTESCAN_MAX_UPLOAD_BYTES", c.Server.MaxUploadBytes)
	c.Server.ReadTimeoutSec = getEnvAsInt("WASTESCAN_READ_TIMEOUT_SEC", c.Server.ReadTimeoutSec)
	c.Server.WriteTimeoutSec = getEnvAsInt("WASTESCAN_WRITE_TIMEOUT_SEC", c.Server.WriteTimeoutSec)
	c.Detector.Parallel = getEnvAsBool("WASTESCAN_PARALLEL", c.Detector.Parallel)
	c.Detector.MaxScanDimension = getEnvAsInt("WASTESCAN_MAX_SCAN_DIMENSION", c.Detector.MaxScanDimension)

	if origins := os.Getenv("WASTESCAN_ALLOWED_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		c.Server.AllowedOrigins = parts
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr cannot be empty")
	}

	if c.Server.MaxUploadBytes < 1 {
		return fmt.Errorf("server.max_upload_bytes must be positive")
	}

	if c.Server.ReadTimeoutSec < 1 || c.Server.WriteTimeoutSec < 1 {
		return fmt.Errorf("server timeouts must be positive")
	}

	if c.Detector.MaxScanDimension < 0 {
		return fmt.Errorf("detector.max_scan_dimension cannot be negative")
	}

	return nil
}

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

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
