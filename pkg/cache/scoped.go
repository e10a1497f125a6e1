package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Useful when several preview sessions share one Redis instance and need
// separate cache namespaces.
//
// Example usage:
//
//	sessionKeyer := NewScopedKeyer(NewDefaultKeyer(), "session:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed key for diagram caching.
func (k *ScopedKeyer) LayoutKey(plotHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(plotHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
