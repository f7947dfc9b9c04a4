// Package cache provides a small byte cache used to front preview
// rendering. Regenerating diagram text is cheap, but handing it to the
// layout engine is not, so rendered previews are cached keyed on the
// diagram source and the visible node subset.
//
// Three backends are provided: an in-memory cache for the server, a
// file-based cache for CLI usage, and a null cache for disabling caching
// entirely.
package cache

import (
	"context"
	"time"
)

// Cache is the interface all backends implement.
// Get reports a miss with hit == false rather than an error.
type Cache interface {
	// Get retrieves the value for key, if present and not expired.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
