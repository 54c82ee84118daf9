package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey derives a cache key for one stage ("report" or "artifact")
// from its identity parts: the graph or report hash plus every option
// that changes the stored bytes. Parts are JSON-encoded before hashing
// so a timeout of 0 and an absent timeout key differently.
func hashKey(stage string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return stage + ":" + hex.EncodeToString(sum[:])
}

// Hash content-addresses data with SHA-256, returned as 64 hex chars.
// The pipeline uses it to name graphs: two inputs that decode to the
// same canonical graph document share reports.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
