package transfer

import (
	"fmt"
	"os"

	"github.com/fenilsonani/prototype/internal/core/objects"
	"github.com/fenilsonani/prototype/internal/core/objectstore"
	"github.com/fenilsonani/prototype/internal/core/walker"
)

// statOrNil stats path, returning (nil, nil) if it does not exist rather
// than an error, since a missing root is a valid comparison input (the
// Offline case).
func statOrNil(path string) (os.FileInfo, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return info, nil
}

// CompareNode pairs an optional filesystem side with an optional tree side
// at the same relative path, the input to the status lattice
// (spec.md §4.8's dual walk).
type CompareNode struct {
	FS  *FileWalkNode
	Obj *ObjectWalkNode
}

// CompareTreeReader merges a filesystem subtree and an object subtree into
// paired CompareNodes, keyed by name.
type CompareTreeReader struct {
	FS  *FileTreeReader
	Obj *ObjectTreeReader
}

// ReadChildren implements walker.NodeReader.
func (r *CompareTreeReader) ReadChildren(node *CompareNode) (map[string]*CompareNode, error) {
	var fsChildren map[string]*FileWalkNode
	if node.FS != nil && node.FS.Info.IsDir() {
		var err error
		fsChildren, err = r.FS.ReadChildren(node.FS)
		if err != nil {
			return nil, err
		}
	}

	var objChildren map[string]*ObjectWalkNode
	if node.Obj != nil && node.Obj.isTreeish() {
		treeNode := node.Obj
		if treeNode.Type == objects.TypeCommit {
			// A commit has no named children of its own; its tree does,
			// so resolve straight through rather than exposing the
			// pseudo "" child a plain object walk would yield.
			commitChildren, err := r.Obj.ReadChildren(treeNode)
			if err != nil {
				return nil, err
			}
			treeNode = commitChildren[""]
		}
		var err error
		objChildren, err = r.Obj.ReadChildren(treeNode)
		if err != nil {
			return nil, err
		}
	}

	merged := make(map[string]*CompareNode, len(fsChildren)+len(objChildren))
	for name, fsNode := range fsChildren {
		merged[name] = &CompareNode{FS: fsNode}
	}
	for name, objNode := range objChildren {
		if existing, ok := merged[name]; ok {
			existing.Obj = objNode
		} else {
			merged[name] = &CompareNode{Obj: objNode}
		}
	}
	return merged, nil
}

// FsObjComparePlanBuilder walks paired filesystem/tree nodes to classify
// each path per the status lattice (spec.md §4.8):
//
//	(tracked, on-disk, hash match)     -> Unchanged
//	(tracked, on-disk, hash mismatch)  -> Modified
//	(tracked, on-disk, unknown either) -> MaybeModified
//	(untracked, on-disk, ignored)      -> Ignored
//	(untracked, on-disk)               -> Untracked
//	(tracked, missing on disk)         -> Offline
type FsObjComparePlanBuilder struct {
	Store *objectstore.Store
}

func (b *FsObjComparePlanBuilder) status(node *CompareNode) (Status, error) {
	switch {
	case node.FS != nil && node.FS.Ignored:
		return StatusIgnored, nil
	case node.FS != nil && node.Obj != nil:
		if node.FS.Info.IsDir() || node.Obj.isTreeish() {
			return StatusMaybeModified, nil
		}
		if node.FS.Hash == nil {
			return StatusMaybeModified, nil
		}
		if *node.FS.Hash == node.Obj.Hash {
			return StatusUnchanged, nil
		}
		return StatusModified, nil
	case node.FS != nil:
		return StatusUntracked, nil
	case node.Obj != nil:
		return StatusOffline, nil
	default:
		return StatusUnchanged, nil
	}
}

// ShouldDescend implements walker.WalkOp.
func (b *FsObjComparePlanBuilder) ShouldDescend(ps walker.PathStack, node *CompareNode) (bool, error) {
	fsDir := node.FS != nil && node.FS.Info.IsDir()
	objDir := node.Obj != nil && node.Obj.isTreeish()
	if !fsDir && !objDir {
		return false, nil
	}
	status, err := b.status(node)
	if err != nil {
		return false, err
	}
	return status.IsIncluded(), nil
}

// PreDescend implements walker.WalkOp.
func (b *FsObjComparePlanBuilder) PreDescend(ps walker.PathStack, node *CompareNode) error {
	return nil
}

// NoDescend implements walker.WalkOp.
func (b *FsObjComparePlanBuilder) NoDescend(ps walker.PathStack, node *CompareNode) (*HashPlan, error) {
	status, err := b.status(node)
	if err != nil {
		return nil, err
	}
	plan := &HashPlan{Status: status, Path: comparePath(node)}
	if node.FS != nil {
		plan.IsDir = node.FS.Info.IsDir()
		plan.Size = uint64(node.FS.Info.Size())
		plan.Hash = node.FS.Hash
	}
	if plan.Hash == nil && node.Obj != nil && status == StatusUnchanged {
		h := node.Obj.Hash
		plan.Hash = &h
	}
	return plan, nil
}

// PostDescend implements walker.WalkOp.
func (b *FsObjComparePlanBuilder) PostDescend(ps walker.PathStack, node *CompareNode, children walker.ChildMap[HashPlan]) (*HashPlan, error) {
	plan, err := b.NoDescend(ps, node)
	if err != nil {
		return nil, err
	}
	plan.Children = toChildPlanMap(children)
	return plan, nil
}

func comparePath(node *CompareNode) string {
	if node.FS != nil {
		return node.FS.Path
	}
	if node.Obj != nil {
		return node.Obj.Hash.String()
	}
	return ""
}

// ComparePlan walks root on disk against treeOrCommit in the object store,
// producing the HashPlan whose Status fields carry the full status lattice.
func ComparePlan(store *objectstore.Store, fsReader *FileTreeReader, rootPath string, treeOrCommit *objects.ObjectKey) (*HashPlan, error) {
	objReader := &ObjectTreeReader{Store: store}
	reader := &CompareTreeReader{FS: fsReader, Obj: objReader}
	builder := &FsObjComparePlanBuilder{Store: store}

	info, err := statOrNil(rootPath)
	if err != nil {
		return nil, fmt.Errorf("compare plan: %w", err)
	}
	var fsNode *FileWalkNode
	if info != nil {
		fsNode = &FileWalkNode{Path: rootPath, Info: info}
	}

	var objNode *ObjectWalkNode
	if treeOrCommit != nil {
		rootHandle, err := store.OpenObject(*treeOrCommit)
		if err != nil {
			return nil, fmt.Errorf("compare plan: %w", err)
		}
		objNode = &ObjectWalkNode{Hash: *treeOrCommit, Type: rootHandle.Handle.Header.Type}
		rootHandle.Close()
	}

	root := &CompareNode{FS: fsNode, Obj: objNode}
	plan, err := walker.Walk[*CompareNode, HashPlan](reader, builder, walker.PathStack{}, root)
	if err != nil {
		return nil, fmt.Errorf("compare plan: %w", err)
	}
	return plan, nil
}
