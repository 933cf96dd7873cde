// Package config defines the runtime configuration for ticketbot.
package config

import (
	"encoding/json"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete bot configuration.
// Workflow settings (target chat, template) are not configured here: they
// live in the data directory and are replaceable at runtime.
type Config struct {
	// Token is the Telegram Bot API token obtained from @BotFather.
	Token string `json:"token" yaml:"token"`

	// AdminID is the only user whose settings-file uploads are honored.
	AdminID int64 `json:"admin_id" yaml:"admin_id"`

	// DataDir is where settings files and the message audit log live.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// Debug enables debug-level logging.
	Debug bool `json:"debug" yaml:"debug"`

	// LogFormat selects the log output format: "text" or "json".
	LogFormat string `json:"log_format" yaml:"log_format"`

	// RegisterCommands determines whether to register the command menu
	// with Telegram on startup. Defaults to true if nil.
	RegisterCommands *bool `json:"register_commands" yaml:"register_commands"`

	// DeleteCommandsOnExit determines whether to delete the registered
	// commands when the bot stops. Useful for development.
	DeleteCommandsOnExit bool `json:"delete_commands_on_exit" yaml:"delete_commands_on_exit"`
}

// Default returns a configuration with sensible defaults.
// The token has no default and must be provided.
func Default() *Config {
	return &Config{
		DataDir:   "data",
		LogFormat: "text",
	}
}

// LoadFromFile loads configuration from a file.
// Supports both JSON and YAML formats based on file extension.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadFromBytes(data, path)
}

// LoadFromBytes loads configuration from byte data.
// The path parameter is used to determine the file format (JSON or YAML).
func LoadFromBytes(data []byte, path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else {
		// Default to YAML parsing
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Token == "" {
		return ErrEmptyToken
	}
	if c.DataDir == "" {
		return ErrEmptyDataDir
	}
	return nil
}

// ShouldRegisterCommands reports whether to register the command menu on
// startup. Defaults to true when unset.
func (c *Config) ShouldRegisterCommands() bool {
	if c.RegisterCommands == nil {
		return true
	}
	return *c.RegisterCommands
}

// LogLevel returns the log level name implied by the config.
func (c *Config) LogLevel() string {
	if c.Debug {
		return "debug"
	}
	return "info"
}
