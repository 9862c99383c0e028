package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Load loads the configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

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
			v.AddConfigPath(filepath.Join(home, ".vufind"))
		}

		// Check /etc
		v.AddConfigPath("/etc/vufind/")
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
	// Alma defaults
	v.SetDefault("alma.timeout", 30*time.Second)

	// Inventory defaults
	v.SetDefault("inventory.types", []string{InventoryPhysical})

	// Holdings defaults
	v.SetDefault("holdings.item_limit", 10)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Alma.BaseURL == "" {
		return fmt.Errorf("alma.base_url is required")
	}

	if cfg.Alma.APIKey == "" || cfg.Alma.APIKey == "your-api-key-here" {
		return fmt.Errorf("alma.api_key must be set to a valid API key")
	}

	if cfg.Alma.Timeout <= 0 {
		return fmt.Errorf("alma.timeout must be positive")
	}

	if cfg.Holdings.ItemLimit <= 0 {
		return fmt.Errorf("holdings.item_limit must be positive")
	}

	// Validate inventory types
	validTypes := map[string]bool{
		InventoryPhysical:   true,
		InventoryElectronic: true,
		InventoryDigital:    true,
	}
	for _, t := range cfg.Inventory.Types {
		if !validTypes[t] {
			return fmt.Errorf("invalid inventory type: %s", t)
		}
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
