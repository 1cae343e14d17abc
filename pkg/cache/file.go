package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache keeps draw programs and rendered artifacts on disk between CLI
// runs. Each entry is a single JSON file, fanned out over up to 256
// subdirectories by key hash. Expired or unreadable entries are dropped on
// read; there is no background eviction.
type FileCache struct {
	dir string
}

// NewFileCache opens a cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// fileEntry is the on-disk shape of one cached value.
type fileEntry struct {
	Payload []byte `json:"payload"`
	// Expires is a Unix nanosecond deadline; zero means the entry does
	// not expire.
	Expires int64 `json:"expires,omitempty"`
}

// Get loads the entry for key. Expired and corrupt entries count as misses
// and are removed on the spot.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.entryPath(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if entry.Expires != 0 && time.Now().UnixNano() > entry.Expires {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return entry.Payload, true, nil
}

// Set writes the entry for key. A ttl of zero or less stores it without an
// expiry.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	entry := fileEntry{Payload: data}
	if ttl > 0 {
		entry.Expires = time.Now().Add(ttl).UnixNano()
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// Delete removes the entry for key. Deleting an absent key is not an error.
func (c *FileCache) Delete(_ context.Context, key string) error {
	err := os.Remove(c.entryPath(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close is a no-op.
func (c *FileCache) Close() error { return nil }

// entryPath maps a key to dir/<hh>/<rest>.json, where hh is the first hash
// byte. Fanning out keeps any single directory small.
func (c *FileCache) entryPath(key string) string {
	sum := Hash([]byte(key))
	return filepath.Join(c.dir, sum[:2], sum[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
