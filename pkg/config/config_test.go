package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load missing file = %+v, want defaults", cfg)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[render]
style = "blueprint"

[cache]
backend = "none"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Render.Style != "blueprint" {
		t.Errorf("Style = %q, want %q", cfg.Render.Style, "blueprint")
	}
	if cfg.Cache.Backend != "none" {
		t.Errorf("Backend = %q, want %q", cfg.Cache.Backend, "none")
	}

	// Unset values fall back to defaults.
	if cfg.Render.MaxSize != 500 {
		t.Errorf("MaxSize = %v, want 500", cfg.Render.MaxSize)
	}
	if cfg.Cache.TTLHours != 24 {
		t.Errorf("TTLHours = %v, want 24", cfg.Cache.TTLHours)
	}
	if cfg.Cache.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q, want default", cfg.Cache.Redis.Addr)
	}
}

func TestLoadFullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[render]
style = "blueprint"
formats = ["svg", "png"]
max_size = 800.0
padding = 24.0
png_scale = 3.0

[cache]
backend = "redis"
ttl_hours = 48

[cache.redis]
addr = "redis.internal:6379"
db = 2
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Render.MaxSize != 800 {
		t.Errorf("MaxSize = %v, want 800", cfg.Render.MaxSize)
	}
	if len(cfg.Render.Formats) != 2 || cfg.Render.Formats[1] != "png" {
		t.Errorf("Formats = %v, want [svg png]", cfg.Render.Formats)
	}
	if cfg.Cache.Redis.Addr != "redis.internal:6379" {
		t.Errorf("Redis.Addr = %q", cfg.Cache.Redis.Addr)
	}
	if cfg.Cache.Redis.DB != 2 {
		t.Errorf("Redis.DB = %v, want 2", cfg.Cache.Redis.DB)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load invalid TOML should error")
	}
}

func TestPathUsesXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	path, err := Path()
	if err != nil {
		t.Fatalf("Path error: %v", err)
	}
	want := filepath.Join("/custom/config", "plotplan", "config.toml")
	if path != want {
		t.Errorf("Path = %q, want %q", path, want)
	}
}

func TestCacheDirUsesXDGCacheHome(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/custom/cache")
	dir, err := CacheDir()
	if err != nil {
		t.Fatalf("CacheDir error: %v", err)
	}
	want := filepath.Join("/custom/cache", "plotplan")
	if dir != want {
		t.Errorf("CacheDir = %q, want %q", dir, want)
	}
}
