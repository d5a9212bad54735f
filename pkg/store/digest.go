package store

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/matzehuels/layoutgen/pkg/rotate"
)

// Digest computes a SHA-256 hash of a document.
// Returns the full 64-character hex string.
func Digest(doc rotate.Document) string {
	hash := sha256.Sum256([]byte(doc))
	return hex.EncodeToString(hash[:])
}
