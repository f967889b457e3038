package crypt

import "errors"

var (
	// ErrKeyFormat is returned when the long-term key is not valid hex or
	// decodes to fewer than MinKeySize bytes.
	ErrKeyFormat = errors.New("invalid key")
	// ErrIterationsOutOfRange is returned when an iteration count, whether
	// caller-supplied or recovered from an envelope, falls outside
	// [MinIterations, MaxIterations].
	ErrIterationsOutOfRange = errors.New("iterations out of range")
	// ErrMalformedEnvelope is returned when an envelope is shorter than the
	// fixed-field total, its ciphertext is not block-aligned, or its text
	// transport form fails to decode.
	ErrMalformedEnvelope = errors.New("malformed envelope")
	// ErrTampered is returned when the recomputed authentication tag does not
	// match the carried tag. Decrypting with the wrong key surfaces the same
	// error; the two cases are indistinguishable on purpose.
	ErrTampered = errors.New("authentication failed: envelope tampered with or wrong key")
	// ErrEmptyContent is returned when there is nothing to encrypt or decrypt.
	ErrEmptyContent = errors.New("empty content")
)
