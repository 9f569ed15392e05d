package internal

import (
	"crypto/md5"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	tt "github.com/jslang/jslin/internal/types"
)

const cacheFileName = "lint_cache.gob"

// fileStamp identifies one version of a file's contents.
type fileStamp struct {
	Hash    string
	ModTime time.Time
}

// CacheEntry is one cached lint result.
type CacheEntry struct {
	Stamp        fileStamp
	Issues       []tt.Issue
	CreatedAt    time.Time
	LastAccessed time.Time
}

// Cache stores lint results per file, persisted across runs. An entry is
// served only while the file's contents and the tracked dependency files
// (typically the lint configuration) are unchanged.
type Cache struct {
	CacheDir string

	mutex    sync.Mutex
	entries  map[string]CacheEntry
	maxAge   time.Duration
	depFiles map[string]string // dependency path -> content hash at load time
}

// NewCache opens or creates a cache under cacheDir. Each dependency file is
// hashed now; a later change to any of them invalidates every entry.
func NewCache(cacheDir string, dependencies ...string) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache := &Cache{
		CacheDir: cacheDir,
		entries:  make(map[string]CacheEntry),
		depFiles: make(map[string]string),
	}
	for _, dep := range dependencies {
		// a missing dependency hashes to ""; it starts existing later,
		// the mismatch invalidates as intended
		hash, _ := hashFile(dep)
		cache.depFiles[dep] = hash
	}

	if err := cache.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}
	return cache, nil
}

func (c *Cache) load() error {
	file, err := os.Open(filepath.Join(c.CacheDir, cacheFileName))
	if os.IsNotExist(err) {
		return nil // first run
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

func (c *Cache) save() error {
	file, err := os.Create(filepath.Join(c.CacheDir, cacheFileName))
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(c.entries); err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}
	return nil
}

// Set records the lint result for filename as it exists on disk right now.
func (c *Cache) Set(filename string, issues []tt.Issue) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	stamp, err := stampFile(filename)
	if err != nil {
		return fmt.Errorf("failed to stamp file: %w", err)
	}

	now := time.Now()
	c.entries[filename] = CacheEntry{
		Stamp:        stamp,
		Issues:       issues,
		CreatedAt:    now,
		LastAccessed: now,
	}
	return c.save()
}

// Get returns the cached result for filename if it is still valid.
func (c *Cache) Get(filename string) ([]tt.Issue, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[filename]
	if !exists {
		return nil, false
	}
	if c.isEntryInvalid(filename, entry) {
		delete(c.entries, filename)
		return nil, false
	}

	entry.LastAccessed = time.Now()
	c.entries[filename] = entry
	return entry.Issues, true
}

func (c *Cache) isEntryInvalid(filename string, entry CacheEntry) bool {
	// a zero maxAge means entries never expire
	if c.maxAge > 0 && time.Since(entry.CreatedAt) > c.maxAge {
		return true
	}
	current, err := stampFile(filename)
	if err != nil || current != entry.Stamp {
		return true
	}
	return c.dependenciesChanged()
}

func (c *Cache) dependenciesChanged() bool {
	for dep, recorded := range c.depFiles {
		hash, err := hashFile(dep)
		if err != nil || hash != recorded {
			return true
		}
	}
	return false
}

// SetMaxAge bounds how long an entry stays valid; zero disables the bound.
func (c *Cache) SetMaxAge(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.maxAge = duration
}

// InvalidateAll drops every entry.
func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries = make(map[string]CacheEntry)
	_ = c.save() // manual operation; best effort
}

func stampFile(filename string) (fileStamp, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return fileStamp{}, fmt.Errorf("failed to stat file: %w", err)
	}
	hash, err := hashFile(filename)
	if err != nil {
		return fileStamp{}, err
	}
	return fileStamp{Hash: hash, ModTime: info.ModTime()}, nil
}

func hashFile(filename string) (string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}
