// Package transfer implements the transfer engine that moves content
// between the working directory and the object store: ingest (hash_path),
// extract, commit, and status (spec.md §4.8).
package transfer

import "github.com/fenilsonani/prototype/internal/core/objects"

// Status classifies a path during a walk, following the lattice in
// spec.md §4.8.
type Status int

const (
	// StatusAdd means a path was seen with no comparison target (used by
	// the filesystem-only plan builder, which never compares to a tree).
	StatusAdd Status = iota
	// StatusIgnored means the ignore list matched this path.
	StatusIgnored
	// StatusUnchanged means the filesystem and tree hashes match.
	StatusUnchanged
	// StatusModified means both sides have a hash and they differ.
	StatusModified
	// StatusMaybeModified means at least one side lacks a cached hash, so
	// equality can't be proven cheaply.
	StatusMaybeModified
	// StatusUntracked means the path exists on disk but not in the tree.
	StatusUntracked
	// StatusOffline means the path exists in the tree but not on disk.
	StatusOffline
)

// String renders the status the way the status command prints it.
func (s Status) String() string {
	switch s {
	case StatusAdd:
		return "add"
	case StatusIgnored:
		return "ignored"
	case StatusUnchanged:
		return "unchanged"
	case StatusModified:
		return "modified"
	case StatusMaybeModified:
		return "maybe-modified"
	case StatusUntracked:
		return "untracked"
	case StatusOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// IsIncluded reports whether a node with this status should be descended
// into / contribute to its parent tree. Only Ignored is excluded.
func (s Status) IsIncluded() bool {
	return s != StatusIgnored
}

// HashPlan is the intermediate structure produced by walking the filesystem
// (optionally compared against a previous tree): either a cached hash or a
// size-only stub awaiting hashing, plus child plans for directories.
type HashPlan struct {
	Status   Status
	Path     string
	IsDir    bool
	Hash     *objects.ObjectKey
	Size     uint64
	Children map[string]*HashPlan
}

// UnhashedSize sums the size of every included leaf that has no cached hash
// yet, recursively. Used to report how much work hashing will do.
func (p *HashPlan) UnhashedSize() uint64 {
	if !p.Status.IsIncluded() {
		return 0
	}
	if !p.IsDir {
		if p.Hash == nil {
			return p.Size
		}
		return 0
	}
	var total uint64
	for _, child := range p.Children {
		total += child.UnhashedSize()
	}
	return total
}
