// Package hash provides helpers for hashing and verifying secrets.
//
// Typical usage is keyed hashing of short-lived credentials: store only the
// hash, then verify user input by comparing the plaintext against the stored
// hash. Implementations live in this package behind a small interface.
package hash
