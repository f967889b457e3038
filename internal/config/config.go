// Package config holds the runtime configuration shared by all commands.
package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config is populated by viper from flags and environment variables.
type Config struct {
	// Key sources. At most one may be set; if neither is, the key is read
	// from an interactive prompt.
	Key     string `mapstructure:"key"`
	KeyFile string `mapstructure:"key-file"`

	// Derivation settings recorded in every envelope.
	Iterations int  `mapstructure:"iterations" validate:"min=50,max=1000000"`
	Intensive  bool `mapstructure:"intensive"`

	// Suffix appended to encrypted files and stripped on decryption.
	Suffix string `mapstructure:"suffix" validate:"required"`

	Parallel int  `mapstructure:"parallel" validate:"min=1"`
	Quiet    bool `mapstructure:"quiet"`
	Delete   bool `mapstructure:"delete"`
	Stats    bool `mapstructure:"stats"`

	// Command-specific
	Decrypt bool

	// Positional arguments
	Files []string `validate:"min=1"`
}

// Validate checks the configuration against the struct tags and the key
// source exclusivity rule. Key format itself is validated by the core.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	if c.Key != "" && c.KeyFile != "" {
		return errors.New("key and key-file are mutually exclusive")
	}

	return nil
}
