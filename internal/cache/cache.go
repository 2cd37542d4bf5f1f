// Package cache provides the response cache for the literature-search
// client: a memory tier, an optional disk tier, and a layered combiner.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte-blob cache with per-entry TTL
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from a request URL
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "vital:v1:" + hex.EncodeToString(hash[:])
}
