// Package filecrypt encrypts and decrypts files through the envelope core.
// It owns the filename bookkeeping (the encrypted-file suffix), refuses
// double encryption and double decryption, writes outputs atomically via a
// temp file and rename, and processes many files concurrently.
// It performs no cryptographic work of its own.
package filecrypt
