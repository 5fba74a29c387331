// Package cache stores rendered chart artifacts.
//
// Rendering is pure: the same chart type, props, data and theme always
// produce the same bytes, so artifacts are cached under a hash of those
// inputs plus the output format. Three backends are provided:
//
//   - [FileCache]: one file per entry under a local directory (CLI default)
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: disables caching
//
// Keys are produced by a [Keyer]. Deployments sharing one Redis instance
// separate their entries with the [RedisCache] key prefix.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
// Implementations are safe for concurrent use.
type Cache interface {
	// Get returns the value and true on a hit, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// ArtifactTTL is how long rendered artifacts are kept.
const ArtifactTTL = 7 * 24 * time.Hour

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of a rendered artifact.
	ArtifactKey(chart string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the inputs that determine a rendered artifact.
// Props, Data and Theme are the canonical JSON encodings.
type ArtifactKeyOpts struct {
	Props  []byte
	Data   []byte
	Theme  []byte
	Format string
}

// DefaultKeyer hashes every artifact input into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<chart>:<format>:<sha256>".
func (DefaultKeyer) ArtifactKey(chart string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+chart+":"+opts.Format,
		chart, string(opts.Props), string(opts.Data), string(opts.Theme), opts.Format)
}
