package store

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns the SHA-256 hex digest of content.
// The digest is the bookmark dedup key: it is computed from the raw URL
// string, so the same URL always maps to the same row regardless of which
// backend stored it.
func Fingerprint(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
