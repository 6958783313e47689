package walker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testNode is either a leaf (Value set, Children nil) or a directory
// (Children set) for exercising Walk against a simple in-memory tree.
type testNode struct {
	Value    int
	Children map[string]*testNode
}

type testReader struct{}

func (testReader) ReadChildren(n *testNode) (map[string]*testNode, error) {
	return n.Children, nil
}

// sumOp sums leaf values, skipping nodes under any name in Skip, and records
// visit order for determinism checks.
type sumOp struct {
	visited *[]string
	skip    map[string]bool
}

func (s sumOp) ShouldDescend(ps PathStack, n *testNode) (bool, error) {
	return n.Children != nil, nil
}

func (s sumOp) PreDescend(ps PathStack, n *testNode) error {
	return nil
}

func (s sumOp) PostDescend(ps PathStack, n *testNode, children ChildMap[int]) (*int, error) {
	if len(ps) > 0 {
		*s.visited = append(*s.visited, strings.Join(ps, "/"))
	}
	if len(children) == 0 {
		return nil, nil
	}
	total := 0
	for _, v := range children {
		total += v
	}
	return &total, nil
}

func (s sumOp) NoDescend(ps PathStack, n *testNode) (*int, error) {
	*s.visited = append(*s.visited, strings.Join(ps, "/"))
	if s.skip[strings.Join(ps, "/")] {
		return nil, nil
	}
	v := n.Value
	return &v, nil
}

func TestWalkSumsLeafValues(t *testing.T) {
	root := &testNode{Children: map[string]*testNode{
		"a": {Value: 1},
		"b": {Value: 2},
		"c": {Children: map[string]*testNode{
			"d": {Value: 3},
			"e": {Value: 4},
		}},
	}}

	var visited []string
	op := sumOp{visited: &visited, skip: map[string]bool{}}
	result, err := Walk[*testNode, int](testReader{}, op, PathStack{}, root)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 10, *result)
}

func TestWalkVisitsAscendingNameOrder(t *testing.T) {
	root := &testNode{Children: map[string]*testNode{
		"zebra": {Value: 1},
		"apple": {Value: 2},
		"mango": {Value: 3},
	}}

	var visited []string
	op := sumOp{visited: &visited, skip: map[string]bool{}}
	_, err := Walk[*testNode, int](testReader{}, op, PathStack{}, root)
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "mango", "zebra"}, visited)
}

func TestWalkEmptyDirYieldsNilResult(t *testing.T) {
	root := &testNode{Children: map[string]*testNode{}}
	var visited []string
	op := sumOp{visited: &visited, skip: map[string]bool{}}
	result, err := Walk[*testNode, int](testReader{}, op, PathStack{}, root)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestWalkSkippedLeafExcludedFromParent(t *testing.T) {
	root := &testNode{Children: map[string]*testNode{
		"keep":   {Value: 5},
		"ignore": {Value: 100},
	}}
	var visited []string
	op := sumOp{visited: &visited, skip: map[string]bool{"ignore": true}}
	result, err := Walk[*testNode, int](testReader{}, op, PathStack{}, root)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 5, *result)
}

func TestWalkSingleLeafRoot(t *testing.T) {
	root := &testNode{Value: 42}
	var visited []string
	op := sumOp{visited: &visited, skip: map[string]bool{}}
	result, err := Walk[*testNode, int](testReader{}, op, PathStack{}, root)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 42, *result)
}
