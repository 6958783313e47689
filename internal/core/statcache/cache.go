// Package statcache implements the per-directory stat cache: a JSON
// sidecar file mapping file name to the (size, mtime, hash) seen the last
// time that file was hashed or extracted (spec.md §4.5).
package statcache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fenilsonani/prototype/internal/core/objects"
)

// FileName is the constant sidecar file name written alongside every
// ingested directory.
const FileName = ".prototype-cache"

// CacheTime is a (seconds, nanoseconds) timestamp, matching the JSON array
// encoding used by the cache file (see original cache.rs's CacheTime).
type CacheTime struct {
	Secs  int64
	Nanos uint32
}

// MarshalJSON renders the time as a [secs, nanos] array.
func (c CacheTime) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int64{c.Secs, int64(c.Nanos)})
}

// UnmarshalJSON parses a [secs, nanos] array.
func (c *CacheTime) UnmarshalJSON(data []byte) error {
	var pair [2]int64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("unmarshal cache time: %w", err)
	}
	c.Secs = pair[0]
	c.Nanos = uint32(pair[1])
	return nil
}

// CacheTimeFromModTime converts a filesystem mtime into a CacheTime.
func CacheTimeFromModTime(t time.Time) CacheTime {
	return CacheTime{Secs: t.Unix(), Nanos: uint32(t.Nanosecond())}
}

// Equal reports whether two CacheTimes refer to the same instant.
func (c CacheTime) Equal(other CacheTime) bool {
	return c.Secs == other.Secs && c.Nanos == other.Nanos
}

// FileStats is the freshness signal stored per cache entry.
type FileStats struct {
	Size  uint64    `json:"size"`
	MTime CacheTime `json:"mtime"`
}

// Equal reports whether two FileStats describe the same file state.
func (s FileStats) Equal(other FileStats) bool {
	return s.Size == other.Size && s.MTime.Equal(other.MTime)
}

// CacheEntry is one record in a directory's cache file.
type CacheEntry struct {
	FileStats FileStats         `json:"filestats"`
	Hash      objects.ObjectKey `json:"hash"`
}

// StatusKind enumerates the result of checking a path against the cache.
type StatusKind int

const (
	// NotCached means the file has no entry in the cache at all.
	NotCached StatusKind = iota
	// Modified means the cached (size, mtime) no longer matches the file on disk.
	Modified
	// Cached means the cached (size, mtime) matches; Hash is authoritative.
	Cached
)

// Status is the result of Check.
type Status struct {
	Kind StatusKind
	Size uint64
	Hash objects.ObjectKey
}

// DirCache is the in-memory, lazily-loaded cache for a single directory.
type DirCache struct {
	dir        string
	entries    map[string]CacheEntry
	loadedHash string
	loaded     bool
}

func newDirCache(dir string) *DirCache {
	return &DirCache{dir: dir, entries: map[string]CacheEntry{}}
}

func (d *DirCache) path() string {
	return filepath.Join(d.dir, FileName)
}

func (d *DirCache) load() error {
	if d.loaded {
		return nil
	}
	d.loaded = true

	data, err := os.ReadFile(d.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("load cache %s: %w", d.path(), err)
	}
	var entries map[string]CacheEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("load cache %s: %w", d.path(), err)
	}
	d.entries = entries
	d.loadedHash = string(data)
	return nil
}

// Check compares stats, the caller's stat of the file name within this
// directory (addressed by base name), against the cache. It does not stat
// the file itself.
func (d *DirCache) Check(name string, stats FileStats) (Status, error) {
	if err := d.load(); err != nil {
		return Status{}, err
	}
	entry, ok := d.entries[name]
	if !ok {
		return Status{Kind: NotCached, Size: stats.Size}, nil
	}
	if !entry.FileStats.Equal(stats) {
		return Status{Kind: Modified, Size: stats.Size}, nil
	}
	return Status{Kind: Cached, Hash: entry.Hash}, nil
}

// Insert upserts the entry for name.
func (d *DirCache) Insert(name string, stats FileStats, hash objects.ObjectKey) error {
	if err := d.load(); err != nil {
		return err
	}
	if d.entries == nil {
		d.entries = map[string]CacheEntry{}
	}
	d.entries[name] = CacheEntry{FileStats: stats, Hash: hash}
	return nil
}

// Flush writes the cache to disk if it has changed since it was loaded.
func (d *DirCache) Flush() error {
	if !d.loaded {
		return nil
	}
	data, err := json.Marshal(d.entries)
	if err != nil {
		return fmt.Errorf("flush cache %s: %w", d.path(), err)
	}
	if string(data) == d.loadedHash {
		return nil
	}
	if err := os.WriteFile(d.path(), data, 0o644); err != nil {
		return fmt.Errorf("flush cache %s: %w", d.path(), err)
	}
	d.loadedHash = string(data)
	return nil
}

// AllCaches owns one DirCache per directory path referenced so far,
// lazy-loading on first use and flushing every touched cache on FlushAll.
type AllCaches struct {
	byDir map[string]*DirCache
}

// NewAllCaches returns an empty cache registry.
func NewAllCaches() *AllCaches {
	return &AllCaches{byDir: map[string]*DirCache{}}
}

// For returns the DirCache for dir, creating it if necessary.
func (a *AllCaches) For(dir string) *DirCache {
	if c, ok := a.byDir[dir]; ok {
		return c
	}
	c := newDirCache(dir)
	a.byDir[dir] = c
	return c
}

// FlushAll flushes every DirCache touched so far.
func (a *AllCaches) FlushAll() error {
	for _, c := range a.byDir {
		if err := c.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// StatFile stats the file at dir/name and returns its FileStats.
func StatFile(dir, name string) (FileStats, error) {
	info, err := os.Stat(filepath.Join(dir, name))
	if err != nil {
		return FileStats{}, fmt.Errorf("stat %s/%s: %w", dir, name, err)
	}
	return FileStats{
		Size:  uint64(info.Size()),
		MTime: CacheTimeFromModTime(info.ModTime()),
	}, nil
}
