package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Runner   RunnerConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// RunnerConfig holds script execution settings.
type RunnerConfig struct {
	HTTPTimeoutMS int `mapstructure:"http_timeout_ms"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// HelpStyle selects the integrations help dialog behaviour:
	// "flat" closes on select, "expand" reveals examples in place.
	HelpStyle string `mapstructure:"help_style"`
}

// Load reads configuration from file and env. Env var overrides use prefix SCRIPTDECK_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "scriptdeck", "scriptdeck.db"))
	v.SetDefault("runner.http_timeout_ms", 10000)
	v.SetDefault("ui.help_style", "flat")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SCRIPTDECK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "scriptdeck"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SCRIPTDECK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.UI.HelpStyle != "flat" && c.UI.HelpStyle != "expand" {
		c.UI.HelpStyle = "flat"
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the TUI settings view.
func Save(cfg Config) error {
	path := os.Getenv("SCRIPTDECK_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "scriptdeck", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("runner.http_timeout_ms", cfg.Runner.HTTPTimeoutMS)
	v.Set("ui.help_style", cfg.UI.HelpStyle)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
