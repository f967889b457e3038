package commands

import (
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AshGw/litecrypt/internal/crypt"
)

// NewRootCommand creates the root command with common configuration.
// Every flag can also come from a LITECRYPT_* environment variable.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "litecrypt [flags] command [flags]",
		Short: "Authenticated file encryption utility",
		Long: `Encrypts files into self-describing envelopes: AES-256-CBC with an
HMAC-SHA256 tag and per-message subkeys derived from a hex key.
Provides commands for key generation, encryption, decryption, and
stashing envelopes in a database.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			viper.SetEnvPrefix("litecrypt")
			viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			viper.AutomaticEnv()

			if err := viper.BindPFlags(cmd.Flags()); err != nil {
				return err
			}

			return viper.BindPFlags(cmd.InheritedFlags())
		},
	}

	root.PersistentFlags().StringP("key", "k", "", "Encryption key (hex-encoded, at least 32 bytes decoded)")
	root.PersistentFlags().StringP("key-file", "f", "", "Path to a file holding the hex-encoded key")
	root.PersistentFlags().IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().Bool("delete", false, "Delete the original file after successful encryption/decryption")
	root.PersistentFlags().Bool("stats", false, "Print a summary after processing")
	root.PersistentFlags().Int("iterations", crypt.MinIterations, "Key derivation iteration count, recorded in each envelope")
	root.PersistentFlags().Bool("intensive", false, "Use the cost-intensive key derivation (for low-entropy keys)")
	root.PersistentFlags().String("suffix", ".crypt", "Suffix to append to encrypted files")

	root.AddCommand(
		NewEncryptCommand(),
		NewDecryptCommand(),
		NewGenerateCommand(),
		NewStashCommand(),
	)

	return root
}
