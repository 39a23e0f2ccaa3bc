package internal

import (
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	tt "github.com/autorefactor/autorefactor/internal/types"
)

const cacheFileName = "refactor_cache.msgpack"

// CacheEntry is the stored result of one file.
type CacheEntry struct {
	Hash         string      `msgpack:"hash"`
	Output       []byte      `msgpack:"output"`
	Changes      []tt.Change `msgpack:"changes"`
	Passes       int         `msgpack:"passes"`
	CreatedAt    time.Time   `msgpack:"created_at"`
	LastAccessed time.Time   `msgpack:"last_accessed"`
}

type cacheFile struct {
	Options string                `msgpack:"options"`
	Entries map[string]CacheEntry `msgpack:"entries"`
}

// Cache keeps refactoring results by file, keyed by content hash. Results
// computed under other options are discarded on load.
type Cache struct {
	CacheDir string
	entries  map[string]CacheEntry
	options  string
	mutex    sync.Mutex
	maxAge   time.Duration
}

// NewCache opens, or creates, the cache in cacheDir for results computed
// with opts.
func NewCache(cacheDir string, opts *tt.Options) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	key, err := optionsHash(opts)
	if err != nil {
		return nil, err
	}
	c := &Cache{
		CacheDir: cacheDir,
		entries:  make(map[string]CacheEntry),
		options:  key,
		maxAge:   7 * 24 * time.Hour,
	}
	if err := c.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}
	return c, nil
}

func optionsHash(opts *tt.Options) (string, error) {
	if opts == nil {
		opts = &tt.Options{}
	}
	data, err := yaml.Marshal(opts)
	if err != nil {
		return "", fmt.Errorf("failed to encode options: %w", err)
	}
	return contentHash(data), nil
}

func contentHash(data []byte) string {
	return fmt.Sprintf("%x", md5.Sum(data))
}

func (c *Cache) path() string {
	return filepath.Join(c.CacheDir, cacheFileName)
}

func (c *Cache) load() error {
	data, err := os.ReadFile(c.path())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open cache file: %w", err)
	}
	var f cacheFile
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to decode cache file: %w", err)
	}
	if f.Options == c.options && f.Entries != nil {
		c.entries = f.Entries
	}
	return nil
}

func (c *Cache) save() error {
	data, err := msgpack.Marshal(cacheFile{Options: c.options, Entries: c.entries})
	if err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}
	if err := os.WriteFile(c.path(), data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

// Set stores res.
func (c *Cache) Set(res *Result) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	c.entries[res.Filename] = CacheEntry{
		Hash:         contentHash(res.Source),
		Output:       res.Output,
		Changes:      res.Changes,
		Passes:       res.Passes,
		CreatedAt:    now,
		LastAccessed: now,
	}
	return c.save()
}

// Get returns the stored result for filename if it was computed from src.
func (c *Cache) Get(filename string, src []byte) (*Result, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[filename]
	if !exists {
		return nil, false
	}
	if time.Since(entry.CreatedAt) > c.maxAge || entry.Hash != contentHash(src) {
		delete(c.entries, filename)
		return nil, false
	}
	entry.LastAccessed = time.Now()
	c.entries[filename] = entry

	return &Result{
		Filename: filename,
		Source:   src,
		Output:   entry.Output,
		Changes:  entry.Changes,
		Passes:   entry.Passes,
	}, true
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
	_ = c.save() // manual operation
}
