// Package cache provides caching of rendered diagram artifacts.
//
// Rendering a diagram is deterministic in its inputs, so the SVG bytes for a
// note can be cached under a key derived from everything that influences the
// output: the note identity, the spelling preference, the fret window, the
// tuning, and the drawing backend.
//
// Backends:
//   - FileCache: file-based cache for CLI usage
//   - RedisCache: Redis-backed cache for shared deployments
//   - NullCache: no-op cache for disabling caching
package cache

import (
	"context"
	"time"
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DiagramKeyOpts captures every render input that changes the artifact.
type DiagramKeyOpts struct {
	PreferSharps bool   `json:"prefer_sharps"`
	FretLower    int    `json:"fret_lower"`
	FretUpper    int    `json:"fret_upper"`
	Tuning       []int  `json:"tuning"`  // open-string pitches, lowest first
	Backend      string `json:"backend"` // surface backend name
}

// Keyer generates cache keys for rendered diagrams.
type Keyer interface {
	// DiagramKey generates a key for a rendered diagram artifact.
	DiagramKey(note string, opts DiagramKeyOpts) string
}

// DefaultKeyer hashes the note identity and render options into keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DiagramKey generates a key of the form "diagram:<sha256>".
func (k *DefaultKeyer) DiagramKey(note string, opts DiagramKeyOpts) string {
	return hashKey("diagram", note, opts)
}
