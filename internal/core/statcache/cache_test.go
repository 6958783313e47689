package statcache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenilsonani/prototype/internal/core/objects"
)

func TestCacheTimeJSONShape(t *testing.T) {
	ct := CacheTime{Secs: 120, Nanos: 55}
	data, err := json.Marshal(ct)
	require.NoError(t, err)
	assert.JSONEq(t, "[120,55]", string(data))

	var got CacheTime
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, ct, got)
}

func TestCacheEntryJSONShape(t *testing.T) {
	hash := objects.Hash([]byte("content"))
	entry := CacheEntry{
		FileStats: FileStats{Size: 12345, MTime: CacheTime{Secs: 120, Nanos: 55}},
		Hash:      hash,
	}
	data, err := json.Marshal(entry)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "filestats")
	assert.Contains(t, raw, "hash")
	assert.Equal(t, hash.String(), raw["hash"])

	var got CacheEntry
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, entry, got)
}

func TestDirCacheCheckNotCached(t *testing.T) {
	dir := t.TempDir()
	dc := newDirCache(dir)

	status, err := dc.Check("missing.txt", FileStats{Size: 1})
	require.NoError(t, err)
	assert.Equal(t, NotCached, status.Kind)
}

func TestDirCacheInsertThenCheckCached(t *testing.T) {
	dir := t.TempDir()
	dc := newDirCache(dir)
	stats := FileStats{Size: 42, MTime: CacheTime{Secs: 100, Nanos: 0}}
	hash := objects.Hash([]byte("data"))

	require.NoError(t, dc.Insert("file.txt", stats, hash))
	status, err := dc.Check("file.txt", stats)
	require.NoError(t, err)
	assert.Equal(t, Cached, status.Kind)
	assert.Equal(t, hash, status.Hash)
}

func TestDirCacheCheckModified(t *testing.T) {
	dir := t.TempDir()
	dc := newDirCache(dir)
	stats := FileStats{Size: 42, MTime: CacheTime{Secs: 100, Nanos: 0}}
	hash := objects.Hash([]byte("data"))
	require.NoError(t, dc.Insert("file.txt", stats, hash))

	changed := FileStats{Size: 43, MTime: CacheTime{Secs: 100, Nanos: 0}}
	status, err := dc.Check("file.txt", changed)
	require.NoError(t, err)
	assert.Equal(t, Modified, status.Kind)
}

func TestDirCacheFlushWritesFile(t *testing.T) {
	dir := t.TempDir()
	dc := newDirCache(dir)
	stats := FileStats{Size: 1, MTime: CacheTime{Secs: 1, Nanos: 1}}
	require.NoError(t, dc.Insert("a", stats, objects.Hash([]byte("a"))))
	require.NoError(t, dc.Flush())

	_, err := os.Stat(filepath.Join(dir, FileName))
	assert.NoError(t, err)
}

func TestDirCacheFlushSkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	dc := newDirCache(dir)
	stats := FileStats{Size: 1, MTime: CacheTime{Secs: 1, Nanos: 1}}
	require.NoError(t, dc.Insert("a", stats, objects.Hash([]byte("a"))))
	require.NoError(t, dc.Flush())

	info1, err := os.Stat(filepath.Join(dir, FileName))
	require.NoError(t, err)

	require.NoError(t, dc.Flush())
	info2, err := os.Stat(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Equal(t, info1.ModTime(), info2.ModTime())
}

func TestDirCacheLoadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	hash := objects.Hash([]byte("preexisting"))
	content := `{"existing.txt":{"filestats":{"size":10,"mtime":[5,6]},"hash":"` + hash.String() + `"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	dc := newDirCache(dir)
	status, err := dc.Check("existing.txt", FileStats{Size: 10, MTime: CacheTime{Secs: 5, Nanos: 6}})
	require.NoError(t, err)
	assert.Equal(t, Cached, status.Kind)
	assert.Equal(t, hash, status.Hash)
}

func TestAllCachesForReturnsSameInstance(t *testing.T) {
	a := NewAllCaches()
	dir := t.TempDir()
	c1 := a.For(dir)
	c2 := a.For(dir)
	assert.Same(t, c1, c2)
}

func TestAllCachesFlushAll(t *testing.T) {
	a := NewAllCaches()
	dir := t.TempDir()
	c := a.For(dir)
	require.NoError(t, c.Insert("x", FileStats{Size: 1}, objects.Hash([]byte("x"))))

	require.NoError(t, a.FlushAll())
	_, err := os.Stat(filepath.Join(dir, FileName))
	assert.NoError(t, err)
}

func TestStatFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("hello"), 0o644))

	stats, err := StatFile(dir, "f.txt")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), stats.Size)
}
