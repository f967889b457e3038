package crypt

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// CheckIterations validates an iteration count against the closed range
// [MinIterations, MaxIterations]. The same bound applies to caller-chosen
// values on encryption and to values recovered from untrusted envelopes on
// decryption, before any derivation work happens.
func CheckIterations(iterations int) error {
	if iterations < MinIterations || iterations > MaxIterations {
		return fmt.Errorf("%w: %d not in [%d, %d]",
			ErrIterationsOutOfRange, iterations, MinIterations, MaxIterations)
	}

	return nil
}

// CheckKey trims surrounding whitespace from a hex-encoded long-term key and
// validates that it decodes to at least MinKeySize bytes. It returns the
// trimmed form, which is what key derivation consumes.
func CheckKey(key string) (string, error) {
	key = strings.TrimSpace(key)

	raw, err := hex.DecodeString(key)
	if err != nil {
		return "", fmt.Errorf("%w: not a hex string: %v", ErrKeyFormat, err)
	}

	if len(raw) < MinKeySize {
		return "", fmt.Errorf("%w: decoded key is %d bytes, need at least %d",
			ErrKeyFormat, len(raw), MinKeySize)
	}

	return key, nil
}
