package crypt

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// Envelope is the parsed form of the wire artifact. Field order and sizes are
// fixed; only the ciphertext is variable-length.
type Envelope struct {
	Tag        []byte
	IV         []byte
	Salt       []byte
	Pepper     []byte
	Iterations uint32
	Signature  Algorithm
	Ciphertext []byte
}

// Encode serializes the envelope: tag, IV, salt, pepper, iteration count,
// derivation signature, ciphertext, concatenated with no delimiters. Integers
// are big-endian.
func (e *Envelope) Encode() []byte {
	raw := make([]byte, 0, headerSize+len(e.Ciphertext))

	raw = append(raw, e.Tag...)
	raw = append(raw, e.IV...)
	raw = append(raw, e.Salt...)
	raw = append(raw, e.Pepper...)
	raw = binary.BigEndian.AppendUint32(raw, e.Iterations)
	raw = binary.BigEndian.AppendUint32(raw, uint32(e.Signature))
	raw = append(raw, e.Ciphertext...)

	return raw
}

// EncodeToString serializes the envelope to its URL-safe base64 text
// transport form.
func (e *Envelope) EncodeToString() string {
	return base64.URLEncoding.EncodeToString(e.Encode())
}

// authenticated returns the exact byte sequence the HMAC tag covers:
// IV, salt, pepper, iteration-count bytes, signature bytes, ciphertext.
// The tag itself is never part of it. Built directly rather than sliced from
// Encode, since the tag is not yet known while encrypting.
func (e *Envelope) authenticated() []byte {
	raw := make([]byte, 0, headerSize-TagSize+len(e.Ciphertext))

	raw = append(raw, e.IV...)
	raw = append(raw, e.Salt...)
	raw = append(raw, e.Pepper...)
	raw = binary.BigEndian.AppendUint32(raw, e.Iterations)
	raw = binary.BigEndian.AppendUint32(raw, uint32(e.Signature))
	raw = append(raw, e.Ciphertext...)

	return raw
}

// DecodeEnvelope slices raw bytes into an Envelope at the fixed offsets.
// It fails if the input is shorter than the fixed-field total or if the
// trailing ciphertext is empty or not block-aligned. No cryptographic
// checks happen here.
func DecodeEnvelope(raw []byte) (*Envelope, error) {
	if len(raw) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrMalformedEnvelope, len(raw), headerSize)
	}

	ciphertext := raw[headerSize:]
	if len(ciphertext) == 0 || len(ciphertext)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not a positive multiple of %d",
			ErrMalformedEnvelope, len(ciphertext), BlockSize)
	}

	offset := 0
	next := func(n int) []byte {
		field := raw[offset : offset+n]
		offset += n

		return field
	}

	return &Envelope{
		Tag:        next(TagSize),
		IV:         next(IVSize),
		Salt:       next(SaltSize),
		Pepper:     next(PepperSize),
		Iterations: binary.BigEndian.Uint32(next(IterationsSize)),
		Signature:  Algorithm(binary.BigEndian.Uint32(next(SignatureSize))),
		Ciphertext: ciphertext,
	}, nil
}

// DecodeEnvelopeText decodes the URL-safe base64 transport form, tolerating
// both padded and unpadded input, then slices the raw bytes.
func DecodeEnvelopeText(text string) (*Envelope, error) {
	raw, err := decodeBase64(text)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding transport form: %v", ErrMalformedEnvelope, err)
	}

	return DecodeEnvelope(raw)
}

// decodeBase64 accepts URL-safe base64 with or without padding and returns
// the raw bytes.
func decodeBase64(text string) ([]byte, error) {
	if raw, err := base64.URLEncoding.DecodeString(text); err == nil {
		return raw, nil
	}

	return base64.RawURLEncoding.DecodeString(text)
}
