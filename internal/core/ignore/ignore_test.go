package ignore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIgnoresExactMatch(t *testing.T) {
	l := New()
	l.Add("/repo/.prototype")
	assert.True(t, l.Ignores("/repo/.prototype"))
}

func TestIgnoresDescendant(t *testing.T) {
	l := New()
	l.Add("/repo/.prototype")
	assert.True(t, l.Ignores("/repo/.prototype/objects/ab"))
}

func TestIgnoresUnrelatedSiblingNotMatched(t *testing.T) {
	l := New()
	l.Add("/repo/.prototype")
	assert.False(t, l.Ignores("/repo/.prototype-other"))
}

func TestIgnoresUnrelatedPath(t *testing.T) {
	l := New()
	l.Add("/repo/.prototype")
	assert.False(t, l.Ignores("/repo/src/main.go"))
}

func TestForRepoPreseedsStoreRoot(t *testing.T) {
	root := filepath.Join("/tmp", "repo", ".prototype")
	l := ForRepo(root)
	assert.True(t, l.Ignores(root))
	assert.True(t, l.Ignores(filepath.Join(root, "objects")))
}
