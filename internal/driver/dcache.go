package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"shine/internal/hl"
	"shine/internal/source"
)

// diskCacheSchemaVersion invalidates stored payloads when the format changes.
const diskCacheSchemaVersion uint16 = 1

// Digest is a file content hash used as the cache key.
type Digest = [32]byte

// DiskCache persists highlighting results keyed by file content hash, so
// re-highlighting an unchanged file is a read, not a traversal.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedRange is the serialized form of one highlighted range. Offsets are
// file-relative; the FileID is reassigned on load.
type CachedRange struct {
	Start       uint32
	End         uint32
	Tag         uint8
	Mods        uint32
	BindingHash uint64
}

// DiskPayload is the cached result for one file.
type DiskPayload struct {
	Schema uint16
	Path   string
	Ranges []CachedRange
}

// OpenDiskCache initializes a disk cache under the standard user cache
// location, honoring XDG_CACHE_HOME.
func OpenDiskCache(app string) (*DiskCache, error) {
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
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "hl", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a payload, replacing any previous entry
// atomically.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
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
	defer os.Remove(f.Name()) //nolint:errcheck // gone after the rename on success

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close() //nolint:errcheck,gosec // write error already reported
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload. Missing entries and schema mismatches report a clean
// miss; only I/O and decode problems surface as errors.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
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
	defer f.Close() //nolint:errcheck // read-only handle

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "hl"))
}

// EncodeRanges converts highlighted ranges into their cacheable form.
func EncodeRanges(ranges []hl.HighlightedRange) []CachedRange {
	out := make([]CachedRange, len(ranges))
	for i, r := range ranges {
		out[i] = CachedRange{
			Start:       r.Span.Start,
			End:         r.Span.End,
			Tag:         uint8(r.Highlight.Tag),
			Mods:        uint32(r.Highlight.Mods),
			BindingHash: r.BindingHash,
		}
	}
	return out
}

// DecodeRanges restores highlighted ranges for a file.
func DecodeRanges(cached []CachedRange, file source.FileID) []hl.HighlightedRange {
	out := make([]hl.HighlightedRange, len(cached))
	for i, r := range cached {
		out[i] = hl.HighlightedRange{
			Span:        source.Span{File: file, Start: r.Start, End: r.End},
			Highlight:   hl.Highlight{Tag: hl.Tag(r.Tag), Mods: hl.ModifierSet(r.Mods)},
			BindingHash: r.BindingHash,
		}
	}
	return out
}
