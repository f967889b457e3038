package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
)

// Decrypt opens a raw envelope with the hex-encoded long-term key and returns
// the original message.
//
// The ordering is strict: parse fixed fields, bounds-check the recovered
// iteration count before any derivation work (so a hostile envelope cannot
// force pathological derivation cost), derive subkeys with the algorithm the
// envelope names, compare the recomputed tag in constant time, and only then
// run the cipher. Unauthenticated ciphertext is never decrypted, and a failed
// verification emits no plaintext bytes at all.
func Decrypt(envelope []byte, key string) ([]byte, error) {
	if len(envelope) == 0 {
		return nil, fmt.Errorf("%w: nothing to decrypt", ErrEmptyContent)
	}

	parsed, err := DecodeEnvelope(envelope)
	if err != nil {
		return nil, err
	}

	return open(parsed, key)
}

// DecryptText opens an envelope supplied in its URL-safe base64 transport
// form.
func DecryptText(envelope string, key string) ([]byte, error) {
	if len(envelope) == 0 {
		return nil, fmt.Errorf("%w: nothing to decrypt", ErrEmptyContent)
	}

	parsed, err := DecodeEnvelopeText(envelope)
	if err != nil {
		return nil, err
	}

	return open(parsed, key)
}

func open(envelope *Envelope, key string) ([]byte, error) {
	key, err := CheckKey(key)
	if err != nil {
		return nil, err
	}

	// Untrusted input: bound the iteration count before deriving anything.
	if err := CheckIterations(int(envelope.Iterations)); err != nil {
		return nil, err
	}

	// An undefined signature can only come from corruption; surface it the
	// same way as any other tag failure so no algorithm oracle exists.
	if !envelope.Signature.valid() {
		return nil, fmt.Errorf("%w: unrecognized derivation signature", ErrTampered)
	}

	encKey, macKey, err := subkeys(key, envelope.Salt, envelope.Pepper, int(envelope.Iterations), envelope.Signature)
	if err != nil {
		return nil, err
	}

	mac := hmac.New(sha256.New, macKey)
	mac.Write(envelope.authenticated())

	if !hmac.Equal(mac.Sum(nil), envelope.Tag) {
		return nil, ErrTampered
	}

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	plaintext := make([]byte, len(envelope.Ciphertext))
	cipher.NewCBCDecrypter(block, envelope.IV).CryptBlocks(plaintext, envelope.Ciphertext)

	return unpad(plaintext)
}
