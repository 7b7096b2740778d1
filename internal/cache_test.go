package internal

import (
	"go/token"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	tt "github.com/stylekit/jsstyle/internal/types"
)

func sampleIssues(filename string) []tt.Issue {
	return []tt.Issue{{
		Rule:     "test-rule",
		Category: "test-category",
		Filename: filename,
		Message:  "test issue",
		Start:    token.Position{Line: 1, Column: 1, Filename: filename},
		End:      token.Position{Line: 1, Column: 10, Filename: filename},
	}}
}

func TestCache(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()
	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)

	content := []byte("const a = 1;\n")
	issues := sampleIssues("a.js")

	t.Run("SetAndGet", func(t *testing.T) {
		cache.Set("a.js", content, "cfg", issues)
		got, found := cache.Get("a.js", content, "cfg")
		assert.True(t, found)
		assert.Equal(t, issues, got)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, found := cache.Get("missing.js", content, "cfg")
		assert.False(t, found)
	})

	t.Run("ContentChanged", func(t *testing.T) {
		cache.Set("b.js", content, "cfg", issues)
		_, found := cache.Get("b.js", []byte("const a = 2;\n"), "cfg")
		assert.False(t, found)
	})

	t.Run("ConfigChanged", func(t *testing.T) {
		cache.Set("c.js", content, "cfg", issues)
		_, found := cache.Get("c.js", content, "other")
		assert.False(t, found)
	})
}

func TestCachePersistence(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "cache")
	cache, err := NewCache(dir)
	require.NoError(t, err)

	content := []byte("const a = 1;\n")
	cache.Set("a.js", content, "cfg", sampleIssues("a.js"))
	require.NoError(t, cache.Flush())

	reloaded, err := NewCache(dir)
	require.NoError(t, err)
	got, found := reloaded.Get("a.js", content, "cfg")
	assert.True(t, found)
	assert.Equal(t, sampleIssues("a.js"), got)

	reloaded.InvalidateAll()
	_, found = reloaded.Get("a.js", content, "cfg")
	assert.False(t, found)
}

func TestCacheExpiry(t *testing.T) {
	t.Parallel()
	cache, err := NewCache(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	cache.SetMaxAge(time.Millisecond)

	content := []byte("let x;\n")
	cache.Set("a.js", content, "cfg", nil)
	time.Sleep(5 * time.Millisecond)
	_, found := cache.Get("a.js", content, "cfg")
	assert.False(t, found)
}

func TestCacheCorruptFile(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "cache")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, cacheFileName), []byte("not gob"), 0o644))

	_, err := NewCache(dir)
	assert.Error(t, err)
}

func TestCacheWithEngine(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()
	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)

	engine, err := NewEngine(zap.NewNop(), nil)
	require.NoError(t, err)
	engine.SetCache(cache)

	filename := filepath.Join(tmpDir, "app.js")
	require.NoError(t, os.WriteFile(filename, []byte("const o = { b: 1, a: 2 };\n"), 0o644))

	issues, err := engine.Run(filename)
	require.NoError(t, err)
	require.Len(t, issues, 1)

	cached, found := cache.Get(filename, []byte("const o = { b: 1, a: 2 };\n"), engine.configHash())
	require.True(t, found)
	assert.Equal(t, issues, cached)

	again, err := engine.Run(filename)
	require.NoError(t, err)
	assert.Equal(t, issues, again)

	// a configuration change must not reuse the entry
	engine.IgnoreRule("alphabetize")
	none, err := engine.Run(filename)
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, os.WriteFile(filename, []byte("const o = { a: 1 };\n"), 0o644))
	engine2, err := NewEngine(zap.NewNop(), nil)
	require.NoError(t, err)
	engine2.SetCache(cache)
	clean, err := engine2.Run(filename)
	require.NoError(t, err)
	assert.Empty(t, clean)
}

func TestCacheConcurrency(t *testing.T) {
	t.Parallel()
	cache, err := NewCache(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)

	content := []byte("let a;\n")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			cache.Set("a.js", content, "cfg", sampleIssues("a.js"))
		}()
		go func() {
			defer wg.Done()
			_, _ = cache.Get("a.js", content, "cfg")
		}()
	}
	wg.Wait()
	assert.NoError(t, cache.Flush())
}
