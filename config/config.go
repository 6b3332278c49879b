package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load loads the configuration from file
func Load(configPath string) (*Config, error) {
	// A .env in the working directory may carry BRIDGE_ACCESS_TOKEN; a
	// missing file is fine.
	_ = godotenv.Load()

	v := viper.New()

	// Set default values
	setDefaults(v)

	// Secrets come from the environment, not the config file.
	_ = v.BindEnv("bridge.access_token", "BRIDGE_ACCESS_TOKEN")
	_ = v.BindEnv("bridge.url", "BRIDGE_URL")
	_ = v.BindEnv("bridge.tenant_id", "BRIDGE_TENANT_ID")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".tasks-console"))
		}

		// Check /etc
		v.AddConfigPath("/etc/tasks-console/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Bridge defaults
	v.SetDefault("bridge.url", "http://localhost:8089")
	v.SetDefault("bridge.tenant_id", "default")

	// List defaults
	v.SetDefault("list.limit", 25)
	v.SetDefault("list.show_details", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Bridge.URL == "" {
		return fmt.Errorf("bridge.url is required")
	}

	if cfg.Bridge.TenantID == "" {
		return fmt.Errorf("bridge.tenant_id is required")
	}

	if cfg.Bridge.AccessToken == "" {
		return fmt.Errorf("bridge.access_token must be set (usually via BRIDGE_ACCESS_TOKEN)")
	}

	if cfg.List.Limit <= 0 {
		return fmt.Errorf("list.limit must be positive")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
