// Package crypt implements authenticated symmetric encryption of opaque
// payloads under a hex-encoded long-term key.
//
// Every call to Encrypt produces a self-describing envelope containing
// everything needed to decrypt except the key itself:
//
//	[ HMAC-SHA256 tag : 32 ]
//	[ IV              : 16 ]
//	[ salt            : 16 ]
//	[ pepper          : 16 ]
//	[ iteration count :  4 ]  big-endian
//	[ derivation sig  :  4 ]  big-endian (0 = intensive, 1 = fast)
//	[ ciphertext      : 16n ]
//
// Two per-message subkeys are derived from the long-term key: the cipher
// subkey from the salt and the authentication subkey from the pepper, so
// compromising one never exposes the other. The ciphertext is AES-256-CBC
// over PKCS#7-padded plaintext. The tag covers every field after itself.
//
// Decryption verifies the tag in constant time before the cipher is ever
// invoked. A tag mismatch is indistinguishable from a wrong key.
//
// All functions are pure and stateless; concurrent calls need no
// coordination beyond the process-wide crypto/rand reader.
package crypt
