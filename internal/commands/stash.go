package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AshGw/litecrypt/internal/stash"
)

// stashStore is the slice of the store the subcommands need, so the flows
// below can be exercised without a live database.
type stashStore interface {
	Insert(ctx context.Context, filename string, content []byte, ref string) (int64, error)
	InsertKey(ctx context.Context, filename, key, ref string) (int64, error)
	GetByRef(ctx context.Context, ref string) (*stash.Record, error)
	GetKeyByRef(ctx context.Context, ref string) (string, error)
	List(ctx context.Context) ([]stash.Record, error)
	UpdateByRef(ctx context.Context, ref string, content []byte) error
	DeleteByRef(ctx context.Context, ref string) (int64, error)
}

// NewStashCommand groups the database subcommands. The connection string
// comes from --database-url or DATABASE_URL.
func NewStashCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stash",
		Short: "Store and retrieve envelopes and keys in a database",
	}

	cmd.PersistentFlags().String("database-url", "", "Postgres connection string")

	// The bare DATABASE_URL spelling is common enough to honor alongside the
	// prefixed form.
	_ = viper.BindEnv("database-url", "LITECRYPT_DATABASE_URL", "DATABASE_URL")

	cmd.AddCommand(
		newStashPutCommand(),
		newStashGetCommand(),
		newStashUpdateCommand(),
		newStashRemoveCommand(),
		newStashListCommand(),
	)

	return cmd
}

func openStore(cmd *cobra.Command) (*stash.Store, error) {
	url := viper.GetString("database-url")
	if url == "" {
		return nil, errors.New("no database URL given; use --database-url or DATABASE_URL")
	}

	return stash.Open(cmd.Context(), url)
}

// putEnvelope stores the file's content under ref (generating one when
// empty) and, when key is non-empty, stores the key under the same ref.
func putEnvelope(ctx context.Context, store stashStore, path, ref, key string) (string, error) {
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}

	if ref == "" {
		ref = stash.NewRef()
	}

	if _, err := store.Insert(ctx, filepath.Base(path), content, ref); err != nil {
		return "", err
	}

	if key != "" {
		if _, err := store.InsertKey(ctx, filepath.Base(path), key, ref); err != nil {
			return "", err
		}
	}

	return ref, nil
}

// getEnvelope writes the content stored under ref to output (the stored
// filename when output is empty) and returns the path written and the number
// of bytes.
func getEnvelope(ctx context.Context, store stashStore, ref, output string) (string, int, error) {
	record, err := store.GetByRef(ctx, ref)
	if err != nil {
		return "", 0, err
	}

	if output == "" {
		output = record.Filename
	}

	const ownerReadWrite = 0o600

	if err := os.WriteFile(output, record.Content, ownerReadWrite); err != nil {
		return "", 0, fmt.Errorf("writing output: %w", err)
	}

	return output, len(record.Content), nil
}

// updateEnvelope replaces the content stored under ref with the file's
// current content.
func updateEnvelope(ctx context.Context, store stashStore, ref, path string) error {
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	return store.UpdateByRef(ctx, ref, content)
}

func newStashPutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "put [flags] file",
		Short: "Store a file's content under a reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			ref, err := putEnvelope(cmd.Context(), store, args[0],
				viper.GetString("ref"), viper.GetString("with-key"))
			if err != nil {
				return err
			}

			fmt.Println(ref)

			return nil
		},
	}

	cmd.Flags().String("ref", "", "Reference to store under (generated when empty)")
	cmd.Flags().String("with-key", "", "Also store this hex key under the same reference")

	return cmd
}

func newStashGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [flags] ref",
		Short: "Retrieve stored content or a stored key by reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			if viper.GetBool("show-key") {
				key, err := store.GetKeyByRef(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				fmt.Println(key)

				return nil
			}

			output, size, err := getEnvelope(cmd.Context(), store, args[0], viper.GetString("output"))
			if err != nil {
				return err
			}

			fmt.Printf("Wrote %q (%d bytes)\n", output, size)

			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output path (defaults to the stored filename)")
	cmd.Flags().Bool("show-key", false, "Print the key stored under the reference instead of writing content")

	return cmd
}

func newStashUpdateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update ref file",
		Short: "Replace the content stored under a reference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			return updateEnvelope(cmd.Context(), store, args[0], args[1])
		},
	}
}

func newStashRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm ref",
		Aliases: []string{"remove"},
		Short:   "Delete stored content by reference",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.DeleteByRef(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Removed %d record(s)\n", removed)

			return nil
		},
	}
}

func newStashListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List stored references",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			for _, record := range records {
				fmt.Printf("%s\t%s\t%s\n",
					record.Ref, record.Filename, record.CreatedAt.Format("2006-01-02 15:04:05"))
			}

			return nil
		},
	}
}
