package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"github.com/carthage-software/fennec/pkg/formatter"
)

const cacheVersion = 1

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("service: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Cache remembers which file contents are already formatted, so
// unchanged files skip parsing. Entries are only valid for the settings
// the cache was opened with.
type Cache struct {
	path        string
	fingerprint string

	mu      sync.Mutex
	entries map[string]string
	dirty   bool
}

type cacheFile struct {
	Version     int               `cbor:"1,keyasint"`
	Fingerprint string            `cbor:"2,keyasint"`
	Entries     map[string]string `cbor:"3,keyasint"`
}

// CacheDir returns the directory fennec keeps its caches in.
func CacheDir() string {
	// Try XDG_CACHE_HOME first
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, "fennec")
	}
	// Fall back to ~/.cache
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", "fennec")
	}
	// Last resort: temp dir
	return filepath.Join(os.TempDir(), "fennec-cache")
}

// CachePath returns the cache file used for the project at root.
func CachePath(root string) string {
	return filepath.Join(CacheDir(), "format-"+hash(root)[:16]+".cbor")
}

// ClearCache removes every cache file.
func ClearCache() error {
	if err := os.RemoveAll(CacheDir()); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// OpenCache loads the cache at path. A missing, unreadable or stale
// cache starts out empty.
func OpenCache(path string, settings formatter.Settings) (*Cache, error) {
	fingerprint, err := settingsFingerprint(settings)
	if err != nil {
		return nil, err
	}
	c := &Cache{path: path, fingerprint: fingerprint, entries: map[string]string{}}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache %s: %w", path, err)
	}

	var file cacheFile
	if err := cbor.Unmarshal(data, &file); err != nil {
		// A corrupt cache is rebuilt from scratch.
		c.dirty = true
		return c, nil
	}
	if file.Version != cacheVersion || file.Fingerprint != fingerprint {
		c.dirty = true
		return c, nil
	}
	if file.Entries != nil {
		c.entries = file.Entries
	}
	return c, nil
}

func settingsFingerprint(settings formatter.Settings) (string, error) {
	data, err := cborEncMode.Marshal(settings)
	if err != nil {
		return "", fmt.Errorf("encoding settings: %w", err)
	}
	return hash(string(data)), nil
}

func hash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// IsFormatted reports whether content is what formatting path produced
// last time.
func (c *Cache) IsFormatted(path, content string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[path] == hash(content)
}

// Record stores formatted as the formatted content of path.
func (c *Cache) Record(path, formatted string) {
	h := hash(formatted)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries[path] != h {
		c.entries[path] = h
		c.dirty = true
	}
}

// Save writes the cache back to disk if it changed.
func (c *Cache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return nil
	}
	data, err := cborEncMode.Marshal(cacheFile{
		Version:     cacheVersion,
		Fingerprint: c.fingerprint,
		Entries:     c.entries,
	})
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	c.dirty = false
	return nil
}
