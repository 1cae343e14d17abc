package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds a namespaced cache key. The prefix names the entry kind
// (layout, artifact, figure) and the digest covers every input that affects
// the cached bytes. Parts are JSON-encoded into the hash so expressions,
// parameter vectors, and option structs can be mixed freely.
func hashKey(prefix string, parts ...any) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, part := range parts {
		_ = enc.Encode(part)
	}
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
