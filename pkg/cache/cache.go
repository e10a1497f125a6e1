// Package cache provides artifact caching for the plotplan pipeline.
//
// Layout and render stages are pure functions of their inputs, so their
// outputs are cached under content-derived keys: a plot hash plus the layout
// options keys the diagram, and a diagram hash plus the render options keys
// each artifact. Plots themselves are never stored.
//
// Backends: [FileCache] for CLI usage (XDG cache dir), [RedisCache] for
// shared deployments, and [NullCache] to disable caching.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the layout options that affect the diagram output.
type LayoutKeyOpts struct {
	MaxSize float64
	Padding float64
}

// ArtifactKeyOpts are the render options that affect an artifact's bytes.
type ArtifactKeyOpts struct {
	Format string
	Style  string
	Scale  float64
}

// Keyer generates cache keys for pipeline stages.
type Keyer interface {
	// LayoutKey generates a key for diagram caching.
	LayoutKey(plotHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for rendered artifact caching.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the stage inputs into namespaced keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for diagram caching.
func (k *DefaultKeyer) LayoutKey(plotHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", plotHash, opts.MaxSize, opts.Padding)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts.Format, opts.Style, opts.Scale)
}
