package crypt

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// randomizers draws a fresh IV, salt, and pepper for a single encryption.
// Every call returns independent values; identical plaintext and key never
// produce identical envelopes.
func randomizers() (iv, salt, pepper []byte, err error) {
	buf := make([]byte, IVSize+SaltSize+PepperSize)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, nil, nil, fmt.Errorf("generating randomizers: %w", err)
	}

	return buf[:IVSize], buf[IVSize : IVSize+SaltSize], buf[IVSize+SaltSize:], nil
}

// GenerateKey returns a new hex-encoded long-term key of size random bytes.
// The size must be at least MinKeySize.
func GenerateKey(size int) (string, error) {
	if size < MinKeySize {
		return "", fmt.Errorf("%w: key size must be at least %d bytes", ErrKeyFormat, MinKeySize)
	}

	key := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", fmt.Errorf("generating key: %w", err)
	}

	return hex.EncodeToString(key), nil
}
