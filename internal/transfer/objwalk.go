package transfer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fenilsonani/prototype/internal/core/objects"
	"github.com/fenilsonani/prototype/internal/core/objectstore"
	"github.com/fenilsonani/prototype/internal/core/statcache"
	"github.com/fenilsonani/prototype/internal/core/walker"
)

// ObjectWalkNode is one node of an object-graph walk: the hash to visit and
// the type its header reports.
type ObjectWalkNode struct {
	Hash objects.ObjectKey
	Type objects.ObjectType
}

// isTreeish reports whether this node's children should be walked: Trees
// expand to their entries; Commits expand, via an empty-named pseudo-child,
// to their own tree (spec.md §4.8: "should_descend: true iff the object is
// Tree or Commit").
func (n ObjectWalkNode) isTreeish() bool {
	return n.Type == objects.TypeTree || n.Type == objects.TypeCommit
}

// ObjectTreeReader reads a Tree or Commit's children as ObjectWalkNodes.
type ObjectTreeReader struct {
	Store *objectstore.Store
}

// ReadChildren implements walker.NodeReader.
func (r *ObjectTreeReader) ReadChildren(node *ObjectWalkNode) (map[string]*ObjectWalkNode, error) {
	obj, err := r.Store.LoadObject(node.Hash)
	if err != nil {
		return nil, err
	}

	switch node.Type {
	case objects.TypeTree:
		tree := obj.(*objects.Tree)
		children := make(map[string]*ObjectWalkNode, tree.Len())
		for _, entry := range tree.Entries() {
			childType, err := r.headerType(entry.Hash)
			if err != nil {
				return nil, err
			}
			children[entry.Name] = &ObjectWalkNode{Hash: entry.Hash, Type: childType}
		}
		return children, nil
	case objects.TypeCommit:
		commit := obj.(*objects.Commit)
		childType, err := r.headerType(commit.Tree)
		if err != nil {
			return nil, err
		}
		return map[string]*ObjectWalkNode{"": {Hash: commit.Tree, Type: childType}}, nil
	default:
		return nil, fmt.Errorf("read children of %s: not a tree or commit", node.Hash)
	}
}

func (r *ObjectTreeReader) headerType(hash objects.ObjectKey) (objects.ObjectType, error) {
	reader, err := r.Store.OpenObject(hash)
	if err != nil {
		return 0, err
	}
	defer reader.Close()
	return reader.Handle.Header.Type, nil
}

// ExtractObjectOp walks an object graph, materializing it onto disk under
// ExtractRoot (spec.md §4.8's Extract).
type ExtractObjectOp struct {
	Store       *objectstore.Store
	Cache       *statcache.AllCaches
	ExtractRoot string
}

func (op *ExtractObjectOp) absPath(ps walker.PathStack) string {
	parts := append([]string{op.ExtractRoot}, ps...)
	return filepath.Join(parts...)
}

// ShouldDescend implements walker.WalkOp.
func (op *ExtractObjectOp) ShouldDescend(ps walker.PathStack, node *ObjectWalkNode) (bool, error) {
	return node.isTreeish(), nil
}

// PreDescend implements walker.WalkOp: ensures a directory exists at this
// node's path, clobbering a non-directory if one is in the way, but
// preserving an existing directory for a merge-extract.
func (op *ExtractObjectOp) PreDescend(ps walker.PathStack, node *ObjectWalkNode) error {
	dirPath := op.absPath(ps)
	info, err := os.Lstat(dirPath)
	if err == nil && info.IsDir() {
		return nil
	}
	if err == nil {
		if rmErr := os.Remove(dirPath); rmErr != nil {
			return fmt.Errorf("extract object: remove %s: %w", dirPath, rmErr)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("extract object: stat %s: %w", dirPath, err)
	}
	if err := os.Mkdir(dirPath, 0o755); err != nil {
		return fmt.Errorf("extract object: mkdir %s: %w", dirPath, err)
	}
	return nil
}

// NoDescend implements walker.WalkOp: extracts a Blob/ChunkedBlob leaf.
func (op *ExtractObjectOp) NoDescend(ps walker.PathStack, node *ObjectWalkNode) (*struct{}, error) {
	absPath := op.absPath(ps)
	if err := ExtractFile(op.Store, node.Hash, absPath, op.Cache); err != nil {
		return nil, err
	}
	return nil, nil
}

// PostDescend implements walker.WalkOp: a Tree/Commit contributes nothing
// to its own parent beyond having created its directory and extracted its
// children, which PreDescend/NoDescend already did.
func (op *ExtractObjectOp) PostDescend(ps walker.PathStack, node *ObjectWalkNode, children walker.ChildMap[struct{}]) (*struct{}, error) {
	return nil, nil
}

// ExtractObject extracts hash to destPath, descending through Tree/Commit
// objects and streaming Blob/ChunkedBlob content to disk.
func ExtractObject(store *objectstore.Store, cache *statcache.AllCaches, hash objects.ObjectKey, destPath string) error {
	reader, err := store.OpenObject(hash)
	if err != nil {
		return fmt.Errorf("extract object %s to %s: %w", hash, destPath, err)
	}
	rootType := reader.Handle.Header.Type
	reader.Close()

	op := &ExtractObjectOp{Store: store, Cache: cache, ExtractRoot: filepath.Dir(destPath)}
	root := &ObjectWalkNode{Hash: hash, Type: rootType}
	treeReader := &ObjectTreeReader{Store: store}

	if !root.isTreeish() {
		// A bare Blob/ChunkedBlob is extracted directly to destPath, not
		// to a child of its parent directory.
		op.ExtractRoot = destPath
		_, err := walker.Walk[*ObjectWalkNode, struct{}](treeReader, op, walker.PathStack{}, root)
		if err != nil {
			return fmt.Errorf("extract object %s to %s: %w", hash, destPath, err)
		}
		return nil
	}

	ps := walker.PathStack{filepath.Base(destPath)}
	_, err = walker.Walk[*ObjectWalkNode, struct{}](treeReader, op, ps, root)
	if err != nil {
		return fmt.Errorf("extract object %s to %s: %w", hash, destPath, err)
	}
	return nil
}
