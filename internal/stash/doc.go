// Package stash persists envelopes and keys in a relational database,
// linking them by an opaque reference string. It mirrors the two-table
// layout of the original tool: stash_main holds binary envelope content,
// stash_keys holds hex key strings. The package does no cryptographic
// work; content is stored exactly as given.
package stash
