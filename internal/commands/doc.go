// Package commands provides the command-line interface for litecrypt.
//
// It implements commands for:
//   - key generation
//   - file encryption and decryption
//   - stashing envelopes and keys in a database
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands
