package crypt

import (
	"crypto/sha256"
	"fmt"

	"github.com/dchest/bcrypt_pbkdf"
)

// Algorithm selects which key derivation function produced the subkeys of an
// envelope. The value is carried verbatim in the derivation signature field,
// making every message self-describing.
type Algorithm uint32

const (
	// AlgorithmIntensive stretches the key with bcrypt_pbkdf, resisting
	// offline brute force of weak long-term keys. Cost scales with the
	// iteration count.
	AlgorithmIntensive Algorithm = 0
	// AlgorithmFast hashes key and entropy with a single SHA-256 pass. Meant
	// for long-term keys that are already high-entropy. The iteration count
	// is carried and bounds-checked but does not affect the derivation.
	AlgorithmFast Algorithm = 1
)

// valid reports whether a is one of the two defined algorithms.
func (a Algorithm) valid() bool {
	return a == AlgorithmIntensive || a == AlgorithmFast
}

func (a Algorithm) String() string {
	switch a {
	case AlgorithmIntensive:
		return "intensive"
	case AlgorithmFast:
		return "fast"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(a))
	}
}

// deriveSubkey turns the long-term key and one 16-byte entropy value (salt or
// pepper) into a 32-byte subkey. Deterministic: identical inputs always yield
// identical output, which is what lets decryption reproduce the subkeys.
//
// The long-term key enters the derivation in its trimmed hex string form, not
// decoded; the envelope format depends on this.
func deriveSubkey(key string, entropy []byte, iterations int, algorithm Algorithm) ([]byte, error) {
	if len(entropy) != SaltSize {
		return nil, fmt.Errorf("%w: entropy is %d bytes, need %d", ErrMalformedEnvelope, len(entropy), SaltSize)
	}

	switch algorithm {
	case AlgorithmIntensive:
		subkey, err := bcrypt_pbkdf.Key([]byte(key), entropy, iterations, SubkeySize)
		if err != nil {
			return nil, fmt.Errorf("deriving subkey: %w", err)
		}

		return subkey, nil
	case AlgorithmFast:
		digest := sha256.Sum256(append([]byte(key), entropy...))

		return digest[:], nil
	default:
		return nil, fmt.Errorf("unknown derivation algorithm %d", uint32(algorithm))
	}
}

// subkeys derives the cipher subkey (from the salt) and the authentication
// subkey (from the pepper). The two are independent: each uses its own
// entropy, so compromising one does not expose the other.
func subkeys(key string, salt, pepper []byte, iterations int, algorithm Algorithm) (encKey, macKey []byte, err error) {
	encKey, err = deriveSubkey(key, salt, iterations, algorithm)
	if err != nil {
		return nil, nil, err
	}

	macKey, err = deriveSubkey(key, pepper, iterations, algorithm)
	if err != nil {
		return nil, nil, err
	}

	return encKey, macKey, nil
}
