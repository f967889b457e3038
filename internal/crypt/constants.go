package crypt

import "crypto/sha256"

const (
	// TagSize is the length of the HMAC-SHA256 authentication tag.
	TagSize = sha256.Size
	// IVSize is the length of the CBC initialization vector.
	IVSize = 16
	// SaltSize is the length of the salt used to derive the cipher subkey.
	SaltSize = 16
	// PepperSize is the length of the pepper used to derive the authentication subkey.
	PepperSize = 16
	// BlockSize is the AES block size; ciphertext length is always a multiple of it.
	BlockSize = 16
	// IterationsSize is the width of the big-endian iteration count field.
	IterationsSize = 4
	// SignatureSize is the width of the big-endian derivation signature field.
	SignatureSize = 4

	// SubkeySize is the length of each derived subkey (AES-256 key / HMAC key).
	SubkeySize = 32
	// MinKeySize is the minimum decoded length of the long-term key.
	MinKeySize = 32

	// MinIterations is the lowest accepted key derivation iteration count.
	MinIterations = 50
	// MaxIterations is the highest accepted key derivation iteration count.
	MaxIterations = 1_000_000
)

// headerSize is the fixed-field total: everything before the ciphertext.
const headerSize = TagSize + IVSize + SaltSize + PepperSize + IterationsSize + SignatureSize
