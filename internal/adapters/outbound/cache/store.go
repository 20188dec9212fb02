package cache

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/stationxml-rs/fixturecheck/internal/domain"
)

// Store is a file-based implementation of domain.OracleCacheStore.
type Store struct{}

// New creates a new file-based cache store.
func New() *Store {
	return &Store{}
}

// Load reads the oracle cache under stateDir. A missing or unreadable cache
// yields an empty one bound to stateDir.
func (s *Store) Load(stateDir string) (*domain.OracleCache, error) {
	empty := &domain.OracleCache{StateDir: stateDir, Entries: map[string]domain.CachedOracleEntry{}}

	data, err := os.ReadFile(cachePath(stateDir))
	if err != nil {
		if os.IsNotExist(err) {
			return empty, nil // no cache is not an error
		}
		return nil, err
	}

	var cache domain.OracleCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return empty, nil // corrupt cache is rebuilt
	}
	cache.StateDir = stateDir
	if cache.Entries == nil {
		cache.Entries = map[string]domain.CachedOracleEntry{}
	}
	return &cache, nil
}

// Save writes the cache to disk, creating directories as needed.
func (s *Store) Save(cache *domain.OracleCache) error {
	if err := os.MkdirAll(cacheDir(cache.StateDir), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(cachePath(cache.StateDir), data, 0644)
}

// Invalidate removes the cache file under stateDir.
func (s *Store) Invalidate(stateDir string) error {
	if err := os.Remove(cachePath(stateDir)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func cacheDir(stateDir string) string {
	return filepath.Join(stateDir, "cache")
}

func cachePath(stateDir string) string {
	return filepath.Join(cacheDir(stateDir), "oracle.json")
}
