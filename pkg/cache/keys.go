package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// PreviewKey derives the cache key for a rendered preview. The key covers
// the diagram source, the visible id subset, and the render style, so any
// visibility change produces a distinct key. The visible set is sorted
// before hashing to make the key independent of traversal order.
func PreviewKey(source string, visible []string, style string) string {
	ids := make([]string, len(visible))
	copy(ids, visible)
	sort.Strings(ids)
	return "preview:" + Hash([]byte(source+"\x00"+strings.Join(ids, "\x00")+"\x00"+style))
}
