package transfer

import (
	"fmt"

	"github.com/fenilsonani/prototype/internal/core/ignore"
	"github.com/fenilsonani/prototype/internal/core/objects"
	"github.com/fenilsonani/prototype/internal/core/objectstore"
	"github.com/fenilsonani/prototype/internal/core/statcache"
	"github.com/fenilsonani/prototype/internal/core/walker"
)

// FsTransfer composes the object store, stat cache, and ignore list into
// the four operations spec.md §4.8 names: hash_path, extract_object,
// commit, and status.
type FsTransfer struct {
	Store  *objectstore.Store
	Cache  *statcache.AllCaches
	Ignore *ignore.List
}

// New builds an FsTransfer over an already-initialized store, pre-seeding
// its ignore list with the store's own root so repeated hashing never
// walks into R/.
func New(store *objectstore.Store) *FsTransfer {
	return &FsTransfer{
		Store:  store,
		Cache:  statcache.NewAllCaches(),
		Ignore: ignore.ForRepo(store.Root),
	}
}

func (t *FsTransfer) fsReader() *FileTreeReader {
	return &FileTreeReader{Ignore: t.Ignore, Cache: t.Cache}
}

// HashPath ingests path (file or directory) into the object store, returning
// the root hash. A directory that contains nothing but ignored entries
// hashes to nil (spec.md §4.8 step 1-3).
func (t *FsTransfer) HashPath(path string) (*objects.ObjectKey, error) {
	reader := t.fsReader()
	info, err := statOrNil(path)
	if err != nil {
		return nil, fmt.Errorf("hash path %s: %w", path, err)
	}
	if info == nil {
		return nil, fmt.Errorf("hash path %s: does not exist", path)
	}

	node := &FileWalkNode{Path: path}
	node.Info = info
	if t.Ignore.Ignores(path) {
		node.Ignored = true
	} else if !info.IsDir() {
		dir, name := splitDirBase(path)
		node.Hash = lookupCachedHash(t.Cache, dir, name, info)
	}

	builder := FsOnlyPlanBuilder{}
	plan, err := walker.Walk[*FileWalkNode, HashPlan](reader, builder, walker.PathStack{}, node)
	if err != nil {
		return nil, fmt.Errorf("hash path %s: %w", path, err)
	}
	if plan == nil {
		return nil, nil
	}
	hash, err := runHashAndStore(plan, t.Store, t.Cache)
	if err != nil {
		return nil, fmt.Errorf("hash path %s: %w", path, err)
	}
	if err := t.Cache.FlushAll(); err != nil {
		return nil, fmt.Errorf("hash path %s: flush cache: %w", path, err)
	}
	return hash, nil
}

// ExtractObject materializes hash onto disk at destPath.
func (t *FsTransfer) ExtractObject(hash objects.ObjectKey, destPath string) error {
	if err := ExtractObject(t.Store, t.Cache, hash, destPath); err != nil {
		return err
	}
	return t.Cache.FlushAll()
}

// Status compares path against treeOrCommit (nil means "nothing tracked
// yet", classifying every included path as Untracked), returning the full
// status lattice as a HashPlan tree.
func (t *FsTransfer) Status(path string, treeOrCommit *objects.ObjectKey) (*HashPlan, error) {
	plan, err := ComparePlan(t.Store, t.fsReader(), path, treeOrCommit)
	if err != nil {
		return nil, fmt.Errorf("status %s: %w", path, err)
	}
	return plan, nil
}

// Commit hashes path and stores a Commit object over the resulting tree,
// with parents and message as given. A nil root hash (path hashed to
// nothing, e.g. an entirely ignored directory) is an error: there is
// nothing to commit.
func (t *FsTransfer) Commit(path string, parents []objects.ObjectKey, message []byte) (objects.ObjectKey, error) {
	root, err := t.HashPath(path)
	if err != nil {
		return objects.ObjectKey{}, fmt.Errorf("commit %s: %w", path, err)
	}
	if root == nil {
		return objects.ObjectKey{}, fmt.Errorf("commit %s: nothing to commit", path)
	}
	commit := objects.NewCommit(*root, parents, message)
	hash, err := t.Store.StoreObject(commit)
	if err != nil {
		return objects.ObjectKey{}, fmt.Errorf("commit %s: %w", path, err)
	}
	return hash, nil
}

