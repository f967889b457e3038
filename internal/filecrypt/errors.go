package filecrypt

import "errors"

var (
	// ErrIsDirectory is returned when a directory is given instead of a file.
	ErrIsDirectory = errors.New("given a directory instead of a file")
	// ErrAlreadyEncrypted is returned when encrypting a file that already
	// carries the encrypted suffix.
	ErrAlreadyEncrypted = errors.New("file is already encrypted")
	// ErrNotEncrypted is returned when decrypting a file that does not carry
	// the encrypted suffix.
	ErrNotEncrypted = errors.New("file does not carry the encrypted suffix")
)
