package transfer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fenilsonani/prototype/internal/core/ignore"
	"github.com/fenilsonani/prototype/internal/core/objects"
	"github.com/fenilsonani/prototype/internal/core/objectstore"
	"github.com/fenilsonani/prototype/internal/core/statcache"
	"github.com/fenilsonani/prototype/internal/core/walker"
)

// FileWalkNode is one node of a filesystem walk: its absolute path, stat
// info, a cached hash (if the stat cache proves it fresh), and whether the
// ignore list excludes it.
type FileWalkNode struct {
	Path    string
	Info    os.FileInfo
	Hash    *objects.ObjectKey
	Ignored bool
}

// FileTreeReader reads a directory's children as FileWalkNodes, consulting
// the ignore list and stat cache for each.
type FileTreeReader struct {
	Ignore *ignore.List
	Cache  *statcache.AllCaches
}

// ReadChildren implements walker.NodeReader.
func (r *FileTreeReader) ReadChildren(node *FileWalkNode) (map[string]*FileWalkNode, error) {
	if !node.Info.IsDir() {
		return nil, nil
	}
	entries, err := os.ReadDir(node.Path)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", node.Path, err)
	}

	children := make(map[string]*FileWalkNode, len(entries))
	for _, entry := range entries {
		if entry.Name() == statcache.FileName {
			continue
		}
		childPath := filepath.Join(node.Path, entry.Name())
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", childPath, err)
		}
		child := &FileWalkNode{Path: childPath, Info: info}
		if r.Ignore != nil && r.Ignore.Ignores(childPath) {
			child.Ignored = true
		} else if !info.IsDir() {
			child.Hash = lookupCachedHash(r.Cache, node.Path, entry.Name(), info)
		}
		children[entry.Name()] = child
	}
	return children, nil
}

func lookupCachedHash(cache *statcache.AllCaches, dir, name string, info os.FileInfo) *objects.ObjectKey {
	if cache == nil {
		return nil
	}
	dc := cache.For(dir)
	stats := statcache.FileStats{Size: uint64(info.Size()), MTime: statcache.CacheTimeFromModTime(info.ModTime())}
	status, err := dc.Check(name, stats)
	if err != nil || status.Kind != statcache.Cached {
		return nil
	}
	hash := status.Hash
	return &hash
}

// FsOnlyPlanBuilder walks filesystem nodes to build a HashPlan, considering
// only the ignore list and stat cache: status is Ignored or Add
// (spec.md §4.8 step 1).
type FsOnlyPlanBuilder struct{}

func (b FsOnlyPlanBuilder) status(node *FileWalkNode) Status {
	if node.Ignored {
		return StatusIgnored
	}
	return StatusAdd
}

// ShouldDescend implements walker.WalkOp.
func (b FsOnlyPlanBuilder) ShouldDescend(ps walker.PathStack, node *FileWalkNode) (bool, error) {
	return node.Info.IsDir() && b.status(node).IsIncluded(), nil
}

// PreDescend implements walker.WalkOp.
func (b FsOnlyPlanBuilder) PreDescend(ps walker.PathStack, node *FileWalkNode) error {
	return nil
}

// NoDescend implements walker.WalkOp.
func (b FsOnlyPlanBuilder) NoDescend(ps walker.PathStack, node *FileWalkNode) (*HashPlan, error) {
	plan := &HashPlan{
		Status: b.status(node),
		Path:   node.Path,
		IsDir:  node.Info.IsDir(),
		Hash:   node.Hash,
		Size:   uint64(node.Info.Size()),
	}
	return plan, nil
}

// PostDescend implements walker.WalkOp.
func (b FsOnlyPlanBuilder) PostDescend(ps walker.PathStack, node *FileWalkNode, children walker.ChildMap[HashPlan]) (*HashPlan, error) {
	plan, err := b.NoDescend(ps, node)
	if err != nil {
		return nil, err
	}
	plan.Children = toChildPlanMap(children)
	return plan, nil
}

func toChildPlanMap(children walker.ChildMap[HashPlan]) map[string]*HashPlan {
	out := make(map[string]*HashPlan, len(children))
	for name, plan := range children {
		p := plan
		out[name] = &p
	}
	return out
}

// hashPlanReader exposes a HashPlan's own children to the generic walker,
// used for the second pass that hashes and stores files (HashAndStoreOp).
type hashPlanReader struct{}

func (hashPlanReader) ReadChildren(node *HashPlan) (map[string]*HashPlan, error) {
	return node.Children, nil
}

// HashAndStoreOp walks a HashPlan, hashing and storing any leaf that lacks a
// cached hash, then building and storing Tree objects bottom-up
// (spec.md §4.8 step 3).
type HashAndStoreOp struct {
	Store *objectstore.Store
	Cache *statcache.AllCaches
}

// ShouldDescend implements walker.WalkOp.
func (op *HashAndStoreOp) ShouldDescend(ps walker.PathStack, node *HashPlan) (bool, error) {
	return node.IsDir && node.Status.IsIncluded(), nil
}

// PreDescend implements walker.WalkOp.
func (op *HashAndStoreOp) PreDescend(ps walker.PathStack, node *HashPlan) error {
	return nil
}

// NoDescend implements walker.WalkOp.
func (op *HashAndStoreOp) NoDescend(ps walker.PathStack, node *HashPlan) (*objects.ObjectKey, error) {
	if !node.Status.IsIncluded() {
		return nil, nil
	}
	if node.Hash != nil {
		return node.Hash, nil
	}
	hash, err := op.hashFile(node.Path)
	if err != nil {
		return nil, err
	}
	return &hash, nil
}

// PostDescend implements walker.WalkOp.
func (op *HashAndStoreOp) PostDescend(ps walker.PathStack, node *HashPlan, children walker.ChildMap[objects.ObjectKey]) (*objects.ObjectKey, error) {
	if len(children) == 0 {
		return nil, nil
	}
	tree := objects.NewTree()
	for name, hash := range children {
		if err := tree.Insert(name, hash); err != nil {
			return nil, fmt.Errorf("build tree at %s: %w", node.Path, err)
		}
	}
	hash, err := op.Store.StoreObject(tree)
	if err != nil {
		return nil, fmt.Errorf("store tree at %s: %w", node.Path, err)
	}
	return &hash, nil
}

func (op *HashAndStoreOp) hashFile(path string) (objects.ObjectKey, error) {
	return HashFile(path, op.Store, op.Cache)
}

// runHashAndStore walks plan and returns the resulting root hash, or nil if
// the whole plan was excluded/empty (spec.md's "nothing to hash" case).
func runHashAndStore(plan *HashPlan, store *objectstore.Store, cache *statcache.AllCaches) (*objects.ObjectKey, error) {
	op := &HashAndStoreOp{Store: store, Cache: cache}
	return walker.Walk[*HashPlan, objects.ObjectKey](hashPlanReader{}, op, walker.PathStack{}, plan)
}
