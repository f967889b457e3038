package crypt

import (
	"bytes"
	"fmt"
)

// pad applies PKCS#7 padding up to BlockSize. Between 1 and BlockSize bytes
// are always added, even to already-aligned input, so unpadding is never
// ambiguous.
func pad(data []byte) []byte {
	padding := BlockSize - len(data)%BlockSize

	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

// unpad strips PKCS#7 padding, verifying every padding byte. It only ever
// runs on authenticated plaintext, so a padding failure here indicates an
// internal fault rather than an attacker-controlled oracle.
func unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrEmptyContent
	}

	padding := int(data[len(data)-1])
	if padding == 0 || padding > len(data) || padding > BlockSize {
		return nil, fmt.Errorf("%w: invalid padding size %d", ErrMalformedEnvelope, padding)
	}

	for i := len(data) - padding; i < len(data); i++ {
		if data[i] != byte(padding) {
			return nil, fmt.Errorf("%w: inconsistent padding", ErrMalformedEnvelope)
		}
	}

	return data[:len(data)-padding], nil
}
