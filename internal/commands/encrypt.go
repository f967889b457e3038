package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AshGw/litecrypt/internal/config"
	"github.com/AshGw/litecrypt/internal/filecrypt"
)

// NewEncryptCommand creates the cobra command for the encrypt subcommand.
func NewEncryptCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "encrypt [flags] files...",
		Aliases: []string{"enc"},
		Short:   "Encrypt files",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var cfg config.Config
			if err := viper.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("parsing config: %w", err)
			}

			cfg.Files = args

			if err := cfg.Validate(); err != nil {
				return err
			}

			return runProcessor(&cfg)
		},
	}
}

// NewDecryptCommand creates the cobra command for the decrypt subcommand.
func NewDecryptCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "decrypt [flags] files...",
		Aliases: []string{"dec"},
		Short:   "Decrypt files",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var cfg config.Config
			if err := viper.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("parsing config: %w", err)
			}

			cfg.Files = args
			cfg.Decrypt = true

			if err := cfg.Validate(); err != nil {
				return err
			}

			return runProcessor(&cfg)
		},
	}
}

func runProcessor(cfg *config.Config) error {
	key, err := resolveKey(cfg)
	if err != nil {
		return err
	}

	proc, err := filecrypt.NewProcessor(cfg, key)
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	_, _, _, err = proc.ProcessFiles()

	return err
}
