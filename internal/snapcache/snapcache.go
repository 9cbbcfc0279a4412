// Package snapcache persists spec snapshots on disk so repeat
// invocations against an unchanged manifest skip manifest parsing and
// spec verification entirely. Entries are keyed by the SHA-256 of the
// manifest source and stored as msgpack under the XDG cache directory.
package snapcache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"argot/internal/snapshot"
)

// Digest is a SHA-256 cache key.
type Digest [sha256.Size]byte

// Key hashes raw manifest bytes into a cache key.
func Key(data []byte) Digest {
	return sha256.Sum256(data)
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports whether the digest was never computed.
func (d Digest) IsZero() bool {
	var z Digest
	return d == z
}

// Cache is a disk-backed snapshot store. Thread-safe for concurrent
// access; a nil *Cache is a valid no-op cache.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes the cache at the standard location:
// $XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>.
func Open(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Digest) string {
	// "specs" subdirectory keeps the cache root listable by hand.
	return filepath.Join(c.dir, "specs", key.String()+".mp")
}

// Put serializes and writes a snapshot, replacing the entry atomically
// via rename so concurrent readers never observe a torn file.
func (c *Cache) Put(key Digest, snap *snapshot.Snapshot) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(snap); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a snapshot back. A missing entry and an entry written by
// an older schema both come back as a miss, not an error; decode
// failures on present entries are real errors.
func (c *Cache) Get(key Digest) (*snapshot.Snapshot, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var snap snapshot.Snapshot
	if err := msgpack.NewDecoder(f).Decode(&snap); err != nil {
		return nil, false, err
	}
	if snap.Schema != snapshot.Schema {
		return nil, false, nil
	}
	return &snap, true, nil
}

// DropAll invalidates the whole cache, useful after format changes.
// The directory is renamed aside first so a concurrent Put cannot
// write into a tree being deleted.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
