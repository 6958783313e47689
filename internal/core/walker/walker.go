// Package walker implements the generic depth-first tree visitor described
// by spec.md §4.7. It is instantiated twice: once over filesystem nodes to
// build a hash plan, once over object-graph nodes to extract.
package walker

import "sort"

// PathStack is the sequence of names from the walk root to the current node.
type PathStack = []string

// ChildMap collects the per-child results produced by descending into a
// node's children, keyed by child name.
type ChildMap[R any] = map[string]R

// NodeReader resolves a node's children lazily: the walker never assumes a
// tree is fully materialized in memory up front.
type NodeReader[N any] interface {
	ReadChildren(node N) (map[string]N, error)
}

// WalkOp is the visitor applied at every node during a walk.
type WalkOp[N any, R any] interface {
	// ShouldDescend reports whether node's children should be visited.
	ShouldDescend(ps PathStack, node N) (bool, error)
	// PreDescend runs before a node's children are visited. Optional:
	// implementations that don't need it can no-op.
	PreDescend(ps PathStack, node N) error
	// PostDescend runs after a node's children have all been visited,
	// combining their results. Returning a nil result means this node
	// contributes nothing to its own parent (e.g. an empty directory).
	PostDescend(ps PathStack, node N, children ChildMap[R]) (*R, error)
	// NoDescend runs for a node that was not descended into (ShouldDescend
	// returned false), producing its result directly.
	NoDescend(ps PathStack, node N) (*R, error)
}

// Walk performs a single depth-first traversal of node (and, if
// ShouldDescend allows, its descendants read via reader), driving op at each
// step. Children are visited in ascending name order. At most one *R is
// returned for the root; a nil result means the root itself contributed
// nothing (e.g. it was an empty, to-be-skipped directory).
func Walk[N any, R any](reader NodeReader[N], op WalkOp[N, R], ps PathStack, node N) (*R, error) {
	descend, err := op.ShouldDescend(ps, node)
	if err != nil {
		return nil, err
	}
	if !descend {
		return op.NoDescend(ps, node)
	}

	if err := op.PreDescend(ps, node); err != nil {
		return nil, err
	}

	children, err := reader.ReadChildren(node)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(children))
	for name := range children {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(ChildMap[R], len(children))
	for _, name := range names {
		childPS := append(append(PathStack{}, ps...), name)
		result, err := Walk(reader, op, childPS, children[name])
		if err != nil {
			return nil, err
		}
		if result != nil {
			results[name] = *result
		}
	}

	return op.PostDescend(ps, node, results)
}
