// Package assets persists processed wireframe records as files.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Faultbox/wiresoup/pkg/formats"
	"github.com/Faultbox/wiresoup/pkg/wireframe"
)

// Extension is the file extension of stored records.
const Extension = ".wfm"

// ErrInvalidName is returned for asset names that would address a file
// outside the store directory.
var ErrInvalidName = errors.New("invalid asset name")

// FileStore saves and loads records in a single directory.
type FileStore struct {
	dir   string
	cache *Cache
}

// NewFileStore creates a store rooted at dir. The directory is created on first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir:   dir,
		cache: NewCache(),
	}
}

// Dir returns the store directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file path used for an asset name.
func (s *FileStore) Path(name string) string {
	if !strings.HasSuffix(name, Extension) {
		name += Extension
	}
	return filepath.Join(s.dir, name)
}

// checkName rejects empty names, separators and dot segments.
func checkName(name string) error {
	base := strings.TrimSuffix(name, Extension)
	if base == "" || base == "." || base == ".." || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Save writes a record under name, replacing any existing file.
func (s *FileStore) Save(name string, rec *wireframe.Record) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data, err := formats.EncodeWFM(rec)
	if err != nil {
		return err
	}
	path := s.Path(name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	s.cache.Set(path, rec)
	return nil
}

// Load reads a record by name. Records are cached after the first load.
func (s *FileStore) Load(name string) (*wireframe.Record, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	return s.loadPath(s.Path(name))
}

// Resolve loads ref either as a path to an existing .wfm file or as an asset
// name inside the store.
func (s *FileStore) Resolve(ref string) (*wireframe.Record, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return s.loadPath(ref)
	}
	return s.Load(ref)
}

func (s *FileStore) loadPath(path string) (*wireframe.Record, error) {
	if rec, ok := s.cache.Get(path); ok {
		return rec, nil
	}

	rec, err := formats.LoadWFM(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	s.cache.Set(path, rec)
	return rec, nil
}

// List returns the names of all stored records, sorted.
func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Extension {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Extension))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a stored record.
func (s *FileStore) Delete(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	path := s.Path(name)
	s.cache.Delete(path)
	return os.Remove(path)
}

// CacheStats returns cache hit and miss counts.
func (s *FileStore) CacheStats() (hits, misses int) {
	return s.cache.Stats()
}

// Cache is an in-memory cache of decoded records. Records are immutable so
// cached values can be handed to any number of callers.
type Cache struct {
	data map[string]*wireframe.Record
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*wireframe.Record),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (*wireframe.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return rec, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, rec *wireframe.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = rec
}

// Delete drops an item from cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
