package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/AshGw/litecrypt/internal/config"
)

// resolveKey picks the key from the flag, the key file, or an interactive
// no-echo prompt, in that order. The returned string still goes through the
// core's validation.
func resolveKey(cfg *config.Config) (string, error) {
	switch {
	case cfg.Key != "":
		return cfg.Key, nil
	case cfg.KeyFile != "":
		raw, err := os.ReadFile(cfg.KeyFile)
		if err != nil {
			return "", fmt.Errorf("reading key file: %w", err)
		}

		return strings.TrimSpace(string(raw)), nil
	default:
		return promptKey()
	}
}

func promptKey() (string, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return "", errors.New("no key given and stdin is not a terminal; use --key, --key-file, or LITECRYPT_KEY")
	}

	fmt.Fprint(os.Stderr, "Key (hex): ")

	raw, err := term.ReadPassword(fd)

	fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", fmt.Errorf("reading key: %w", err)
	}

	return strings.TrimSpace(string(raw)), nil
}
