package config

import "time"

// Inventory type identifiers accepted in inventory.types.
const (
	InventoryPhysical   = "physical"
	InventoryElectronic = "electronic"
	InventoryDigital    = "digital"
)

// Config represents the complete configuration structure
type Config struct {
	Alma      AlmaConfig      `mapstructure:"alma"`
	Inventory InventoryConfig `mapstructure:"inventory"`
	Holdings  HoldingsConfig  `mapstructure:"holdings"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// AlmaConfig holds Alma API connection details
type AlmaConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// InventoryConfig selects which availability sources are queried and
// how digital delivery links are built.
type InventoryConfig struct {
	// Types is a subset of physical, electronic, digital.
	Types []string `mapstructure:"types"`
	// DigitalDeliveryURL is a link template containing the %%id%%
	// placeholder, substituted with the digital representation id.
	DigitalDeliveryURL string `mapstructure:"digital_delivery_url"`
}

// HoldingsConfig contains per-function settings for the holdings lookup
type HoldingsConfig struct {
	// ItemLimit is the default item window size when the caller does
	// not pass one.
	ItemLimit int `mapstructure:"item_limit"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// HasInventoryType reports whether the given inventory type is enabled.
func (c *Config) HasInventoryType(t string) bool {
	for _, enabled := range c.Inventory.Types {
		if enabled == t {
			return true
		}
	}
	return false
}
