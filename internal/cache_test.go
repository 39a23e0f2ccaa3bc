package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autorefactor/autorefactor/internal/jast"
	tt "github.com/autorefactor/autorefactor/internal/types"
)

func sampleResult(filename string) *Result {
	return &Result{
		Filename: filename,
		Source:   []byte("class T {}\n"),
		Output:   []byte("class T {}\n"),
		Passes:   1,
		Changes: []tt.Change{{
			Rule:     "double-negation",
			Filename: filename,
			Message:  "Removed a double negation",
			Start:    jast.Position{Filename: filename, Offset: 10, Line: 2, Column: 3},
			End:      jast.Position{Filename: filename, Offset: 13, Line: 2, Column: 6},
			Before:   "!!a",
			After:    "a",
		}},
	}
}

func TestCache(t *testing.T) {
	t.Parallel()
	tmpDir := createTempDir(t, "cache-test")
	cacheDir := filepath.Join(tmpDir, "cache")
	opts := &tt.Options{LanguageLevel: 8}

	cache, err := NewCache(cacheDir, opts)
	require.NoError(t, err)

	res := sampleResult("T.java")
	require.NoError(t, cache.Set(res))

	t.Run("Hit", func(t *testing.T) {
		got, ok := cache.Get("T.java", res.Source)
		require.True(t, ok)
		assert.Equal(t, res.Output, got.Output)
		assert.Equal(t, res.Changes, got.Changes)
		assert.Equal(t, 1, got.Passes)
	})

	t.Run("ContentChanged", func(t *testing.T) {
		other := newTestCache(t, cacheDir, opts)
		_, ok := other.Get("T.java", []byte("class U {}\n"))
		assert.False(t, ok)
	})

	t.Run("Reload", func(t *testing.T) {
		reloaded := newTestCache(t, cacheDir, opts)
		got, ok := reloaded.Get("T.java", res.Source)
		require.True(t, ok)
		assert.Equal(t, res.Changes, got.Changes)
	})

	t.Run("OtherOptions", func(t *testing.T) {
		other := newTestCache(t, cacheDir, &tt.Options{LanguageLevel: 5})
		_, ok := other.Get("T.java", res.Source)
		assert.False(t, ok)
	})
}

func TestCacheExpiry(t *testing.T) {
	t.Parallel()
	cache := newTestCache(t, createTempDir(t, "cache-expiry"), nil)
	res := sampleResult("T.java")
	require.NoError(t, cache.Set(res))

	cache.SetMaxAge(-time.Second)
	_, ok := cache.Get("T.java", res.Source)
	assert.False(t, ok)
}

func TestCacheInvalidateAll(t *testing.T) {
	t.Parallel()
	dir := createTempDir(t, "cache-invalidate")
	cache := newTestCache(t, dir, nil)
	require.NoError(t, cache.Set(sampleResult("A.java")))
	require.NoError(t, cache.Set(sampleResult("B.java")))

	cache.InvalidateAll()
	_, ok := cache.Get("A.java", []byte("class T {}\n"))
	assert.False(t, ok)

	reloaded := newTestCache(t, dir, nil)
	_, ok = reloaded.Get("B.java", []byte("class T {}\n"))
	assert.False(t, ok)
}

func TestCacheCorruptFile(t *testing.T) {
	t.Parallel()
	dir := createTempDir(t, "cache-corrupt")
	require.NoError(t, os.WriteFile(filepath.Join(dir, cacheFileName), []byte{0xc1}, 0o644))
	_, err := NewCache(dir, nil)
	assert.Error(t, err)
}

func newTestCache(t *testing.T, dir string, opts *tt.Options) *Cache {
	t.Helper()
	c, err := NewCache(dir, opts)
	require.NoError(t, err)
	return c
}
