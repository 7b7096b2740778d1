package internal

import (
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	tt "github.com/stylekit/jsstyle/internal/types"
)

const cacheFileName = "lint_cache.gob"

// DefaultCacheMaxAge bounds how long an entry is trusted.
const DefaultCacheMaxAge = 7 * 24 * time.Hour

type CacheEntry struct {
	ContentHash  string
	ConfigHash   string
	Issues       []tt.Issue
	CreatedAt    time.Time
	LastAccessed time.Time
}

// Cache remembers the issues of files that did not change since they were
// last linted under the same rule configuration.
type Cache struct {
	CacheDir string
	entries  map[string]CacheEntry
	mutex    sync.Mutex
	maxAge   time.Duration
	dirty    bool
}

func NewCache(cacheDir string) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache := &Cache{
		CacheDir: cacheDir,
		entries:  make(map[string]CacheEntry),
		maxAge:   DefaultCacheMaxAge,
	}

	if err := cache.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}

	return cache, nil
}

func (c *Cache) load() error {
	file, err := os.Open(filepath.Join(c.CacheDir, cacheFileName))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open cache file: %w", err)
	}
	defer file.Close()

	if err := gob.NewDecoder(file).Decode(&c.entries); err != nil {
		return fmt.Errorf("failed to decode cache file: %w", err)
	}
	return nil
}

// Flush writes the entries to disk if any changed since the last flush.
func (c *Cache) Flush() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if !c.dirty {
		return nil
	}

	file, err := os.Create(filepath.Join(c.CacheDir, cacheFileName))
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(c.entries); err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}
	c.dirty = false
	return nil
}

func (c *Cache) Set(filename string, content []byte, configHash string, issues []tt.Issue) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	c.entries[filename] = CacheEntry{
		ContentHash:  contentHash(content),
		ConfigHash:   configHash,
		Issues:       issues,
		CreatedAt:    now,
		LastAccessed: now,
	}
	c.dirty = true
}

// Get returns the cached issues of filename when content and configHash match
// the stored entry.
func (c *Cache) Get(filename string, content []byte, configHash string) ([]tt.Issue, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[filename]
	if !exists {
		return nil, false
	}

	if time.Since(entry.CreatedAt) > c.maxAge ||
		entry.ConfigHash != configHash ||
		entry.ContentHash != contentHash(content) {
		delete(c.entries, filename)
		c.dirty = true
		return nil, false
	}

	entry.LastAccessed = time.Now()
	c.entries[filename] = entry
	return entry.Issues, true
}

func (c *Cache) SetMaxAge(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.maxAge = duration
}

func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]CacheEntry)
	c.dirty = true
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
