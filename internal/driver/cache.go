package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"birch/cst"
	"birch/meta"
)

// Increment when the PositionTable format changes; older payloads then read
// as misses instead of garbage.
const cacheSchemaVersion uint16 = 1

// Digest identifies source content.
type Digest [32]byte

// DigestOf hashes raw source bytes.
func DigestOf(raw []byte) Digest {
	return sha256.Sum256(raw)
}

// RangeEntry is one node's resolved range in storable form.
type RangeEntry struct {
	Node  uint32
	Range cst.CodeRange
}

// PositionTable is the cached product of a clean check: every node's range,
// in node order.
type PositionTable struct {
	Schema  uint16
	Nodes   int // node count of the source tree
	Entries []RangeEntry
}

// TableOf flattens a resolved position map for storage. nodes is the tree's
// node count, kept so cached results can report it without reparsing.
func TableOf(table meta.Map, nodes int) *PositionTable {
	ids := table.Nodes()
	entries := make([]RangeEntry, 0, len(ids))
	for _, id := range ids {
		v, _ := table.Lookup(id)
		r, ok := v.(cst.CodeRange)
		if !ok {
			continue
		}
		entries = append(entries, RangeEntry{Node: uint32(id), Range: r})
	}
	return &PositionTable{Schema: cacheSchemaVersion, Nodes: nodes, Entries: entries}
}

// Cache stores check products on disk keyed by source digest. A nil *Cache
// is valid and never hits. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// OpenCache initializes the cache at the standard user location for app,
// honoring XDG_CACHE_HOME.
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenCacheAt(filepath.Join(base, app))
}

// OpenCacheAt initializes the cache in an explicit directory.
func OpenCacheAt(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Digest) string {
	// A subdirectory keeps the cache root listable next to future products.
	return filepath.Join(c.dir, "positions", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a table, replacing any previous entry
// atomically.
func (c *Cache) Put(key Digest, table *PositionTable) error {
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
	defer func() {
		// Gone already when the rename below won.
		_ = os.Remove(f.Name())
	}()
	if err := msgpack.NewEncoder(f).Encode(table); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads the table stored for key. A missing entry and a payload written
// by a different schema are both reported as a miss.
func (c *Cache) Get(key Digest, out *PositionTable) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != cacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll discards every stored entry and leaves an empty cache behind.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
