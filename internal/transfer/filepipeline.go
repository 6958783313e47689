package transfer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fenilsonani/prototype/internal/core/chunker"
	"github.com/fenilsonani/prototype/internal/core/objects"
	"github.com/fenilsonani/prototype/internal/core/objectstore"
	"github.com/fenilsonani/prototype/internal/core/statcache"
)

// HashFile hashes a single file, storing every emitted chunk object and
// caching the resulting root hash keyed by (size, mtime), grounded on
// pipeline.rs's hash_file.
func HashFile(path string, store *objectstore.Store, cache *statcache.AllCaches) (objects.ObjectKey, error) {
	f, err := os.Open(path)
	if err != nil {
		return objects.ObjectKey{}, fmt.Errorf("hash file %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return objects.ObjectKey{}, fmt.Errorf("hash file %s: %w", path, err)
	}
	stats := statcache.FileStats{Size: uint64(info.Size()), MTime: statcache.CacheTimeFromModTime(info.ModTime())}

	result, err := chunker.Chunk(f)
	if err != nil {
		return objects.ObjectKey{}, fmt.Errorf("hash file %s: %w", path, err)
	}

	for _, blob := range result.Blobs {
		if _, err := store.StoreObject(blob); err != nil {
			return objects.ObjectKey{}, fmt.Errorf("hash file %s: %w", path, err)
		}
	}
	if result.ChunkedBlob != nil {
		if _, err := store.StoreObject(result.ChunkedBlob); err != nil {
			return objects.ObjectKey{}, fmt.Errorf("hash file %s: %w", path, err)
		}
	}

	if cache != nil {
		dir, name := splitDirBase(path)
		if err := cache.For(dir).Insert(name, stats, result.Root); err != nil {
			return objects.ObjectKey{}, fmt.Errorf("hash file %s: cache insert: %w", path, err)
		}
	}

	return result.Root, nil
}

// ExtractFile writes the content addressed by hash to path, priming the
// cache afterward, grounded on pipeline.rs's extract_file. If the cache
// already reports path as matching hash, the write is skipped entirely.
func ExtractFile(store *objectstore.Store, hash objects.ObjectKey, path string, cache *statcache.AllCaches) error {
	dir, name := splitDirBase(path)

	if cache != nil {
		if stats, err := statcache.StatFile(dir, name); err == nil {
			status, err := cache.For(dir).Check(name, stats)
			if err == nil && status.Kind == statcache.Cached && status.Hash == hash {
				return nil
			}
		}
	}

	if info, err := os.Lstat(path); err == nil && info.IsDir() {
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("extract file %s: %w", path, err)
		}
	}

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("extract file %s: %w", path, err)
	}

	if err := store.CopyBlobContent(hash, out); err != nil {
		out.Close()
		return fmt.Errorf("extract file %s: %w", path, err)
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return fmt.Errorf("extract file %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("extract file %s: %w", path, err)
	}

	if cache != nil {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("extract file %s: stat after write: %w", path, err)
		}
		stats := statcache.FileStats{Size: uint64(info.Size()), MTime: statcache.CacheTimeFromModTime(info.ModTime())}
		if err := cache.For(dir).Insert(name, stats, hash); err != nil {
			return fmt.Errorf("extract file %s: cache insert: %w", path, err)
		}
	}
	return nil
}

func splitDirBase(path string) (string, string) {
	return filepath.Dir(path), filepath.Base(path)
}
