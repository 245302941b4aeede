package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHash computes a SHA-256 digest over the given string and returns it
// hex-encoded.
//
// The client summary cache uses it as a stable key for note content, so
// identical content is never summarized twice.
//
// Example usage:
//
//	key := utils.ContentHash(note.Content)
func ContentHash(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}
