package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Config holds application configuration
type Config struct {
	Storage   string `yaml:"storage"`
	DBPath    string `yaml:"db_path"`
	RedisURL  string `yaml:"redis_url"`
	KeyPrefix string `yaml:"key_prefix"`
	Debug     bool   `yaml:"debug"`
	LogFile   string `yaml:"log_file"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Storage:  StorageSQLite,
		RedisURL: "redis://localhost:6379/0",
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (if it exists), then environment variables
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	cfg.Storage = getEnv("TODO_STORAGE", cfg.Storage)
	cfg.DBPath = getEnv("TODO_DB_PATH", cfg.DBPath)
	cfg.RedisURL = getEnv("TODO_REDIS_URL", cfg.RedisURL)
	cfg.KeyPrefix = getEnv("TODO_KEY_PREFIX", cfg.KeyPrefix)
	cfg.Debug = getEnvBool("TODO_DEBUG", cfg.Debug)
	cfg.LogFile = getEnv("TODO_LOG_FILE", cfg.LogFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	switch c.Storage {
	case StorageSQLite, StorageMemory:
	case StorageRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("TODO_REDIS_URL is required for redis storage")
		}
	default:
		return fmt.Errorf("unknown storage %q (must be 'sqlite', 'redis', or 'memory')", c.Storage)
	}
	return nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// DefaultPath returns the path to the config file
func DefaultPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "todo", "config.yaml")
}

// DefaultLogPath returns where the terminal UI writes its log
func DefaultLogPath() string {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, "todo", "todo.log")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
