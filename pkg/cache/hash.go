package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a namespaced cache key: prefix + ":" + sha256 over the JSON
// encoding of parts. Layout keys hash the graph's content hash together with
// every option field that influences positions, so changing either produces
// a distinct key. The full 64-hex-character digest is kept to rule out
// collisions between unrelated graphs.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash returns the sha256 digest of data as a 64-character hex string.
// The pipeline hashes the serialized wire graph with this before keying
// the layout cache.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
