package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
)

// Params controls a single encryption. The zero value selects the intensive
// algorithm with a zero iteration count, which fails validation; use
// DefaultParams for sane defaults.
type Params struct {
	// Iterations is the key derivation iteration count, bounded by
	// [MinIterations, MaxIterations]. It is recorded in the envelope.
	Iterations int

	// Algorithm selects the key derivation function and is recorded in the
	// envelope so decryption never has to guess.
	Algorithm Algorithm
}

// DefaultParams uses the fast algorithm at the minimum iteration count,
// matching the expectation that callers hold a high-entropy generated key.
func DefaultParams() Params {
	return Params{
		Iterations: MinIterations,
		Algorithm:  AlgorithmFast,
	}
}

// Encrypt encrypts message under the hex-encoded long-term key and returns
// the raw envelope bytes.
//
// The pipeline: validate key and iteration count, draw fresh IV/salt/pepper,
// derive the cipher and authentication subkeys, PKCS#7-pad, AES-256-CBC
// encrypt, HMAC the assembled fields, serialize. Any failure aborts the whole
// operation; there is no partial output and no retry.
func Encrypt(message []byte, key string, params Params) ([]byte, error) {
	envelope, err := encrypt(message, key, params)
	if err != nil {
		return nil, err
	}

	return envelope.Encode(), nil
}

// EncryptToString encrypts like Encrypt but returns the URL-safe base64 text
// transport form, the default representation for text contexts.
func EncryptToString(message []byte, key string, params Params) (string, error) {
	envelope, err := encrypt(message, key, params)
	if err != nil {
		return "", err
	}

	return envelope.EncodeToString(), nil
}

func encrypt(message []byte, key string, params Params) (*Envelope, error) {
	if len(message) == 0 {
		return nil, fmt.Errorf("%w: nothing to encrypt", ErrEmptyContent)
	}

	key, err := CheckKey(key)
	if err != nil {
		return nil, err
	}

	if err := CheckIterations(params.Iterations); err != nil {
		return nil, err
	}

	if !params.Algorithm.valid() {
		return nil, fmt.Errorf("unknown derivation algorithm %d", uint32(params.Algorithm))
	}

	iv, salt, pepper, err := randomizers()
	if err != nil {
		return nil, err
	}

	encKey, macKey, err := subkeys(key, salt, pepper, params.Iterations, params.Algorithm)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	padded := pad(message)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	envelope := &Envelope{
		IV:         iv,
		Salt:       salt,
		Pepper:     pepper,
		Iterations: uint32(params.Iterations),
		Signature:  params.Algorithm,
		Ciphertext: ciphertext,
	}

	mac := hmac.New(sha256.New, macKey)
	mac.Write(envelope.authenticated())
	envelope.Tag = mac.Sum(nil)

	return envelope, nil
}
