package stash

import "github.com/google/uuid"

// NewRef returns a fresh opaque reference string for linking an envelope
// with its key record. Callers may supply their own refs instead; nothing
// in the store interprets them.
func NewRef() string {
	return uuid.NewString()
}
