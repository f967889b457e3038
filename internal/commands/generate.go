package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AshGw/litecrypt/internal/crypt"
)

// NewGenerateCommand creates the cobra command for generating a new key.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate a new encryption key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			size, err := cmd.Flags().GetInt("bytes")
			if err != nil {
				return err
			}

			key, err := crypt.GenerateKey(size)
			if err != nil {
				return fmt.Errorf("generating key: %w", err)
			}

			fmt.Println(key)

			return nil
		},
	}

	cmd.Flags().Int("bytes", crypt.MinKeySize, "Key length in bytes before hex encoding")

	return cmd
}
