package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Miss before set
	_, hit, err := c.Get(ctx, "diagram")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("expected miss before Set")
	}

	// Round trip
	if err := c.Set(ctx, "diagram", []byte("svg-bytes"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "diagram")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("expected hit after Set")
	}
	if string(data) != "svg-bytes" {
		t.Errorf("Get = %q, want %q", data, "svg-bytes")
	}

	// Delete
	if err := c.Delete(ctx, "diagram"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "diagram")
	if hit {
		t.Error("expected miss after Delete")
	}

	// Deleting a missing key is not an error
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete missing key error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "short-lived", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(time.Millisecond)

	_, hit, err := c.Get(ctx, "short-lived")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("expected expired entry to be a miss")
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// LayoutKey should include options in hash
	lk1 := k.LayoutKey("hash123", LayoutKeyOpts{MaxSize: 500, Padding: 40})
	lk2 := k.LayoutKey("hash123", LayoutKeyOpts{MaxSize: 800, Padding: 40})
	if lk1 == lk2 {
		t.Error("Different LayoutKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(lk1, "layout:") {
		t.Errorf("LayoutKey should be namespaced: %s", lk1)
	}

	// ArtifactKey
	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Style: "simple"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Style: "simple"})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(ak1, "artifact:") {
		t.Errorf("ArtifactKey should be namespaced: %s", ak1)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "session:123:")

	key := scoped.LayoutKey("hash", LayoutKeyOpts{})
	if !strings.HasPrefix(key, "session:123:layout:") {
		t.Errorf("ScopedKeyer LayoutKey should be prefixed: %s", key)
	}

	// Prefixed and unprefixed keys must differ
	if key == inner.LayoutKey("hash", LayoutKeyOpts{}) {
		t.Error("scoped key should differ from unscoped key")
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ArtifactKey("h", ArtifactKeyOpts{Format: "svg"})
	if !strings.HasPrefix(key, "prefix:artifact:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}
