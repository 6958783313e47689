package objects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("file.txt"))
	assert.False(t, ValidName(""))
	assert.False(t, ValidName("."))
	assert.False(t, ValidName(".."))
	assert.False(t, ValidName("a/b"))
	assert.False(t, ValidName("a\x00b"))
	assert.False(t, ValidName("a\nb"))
}

func TestTreeInsertRejectsInvalidName(t *testing.T) {
	tr := NewTree()
	err := tr.Insert("a/b", Hash([]byte("x")))
	assert.Error(t, err)
}

func TestTreeInsertKeepsSortedOrder(t *testing.T) {
	tr := NewTree()
	require.NoError(t, tr.Insert("zebra", Hash([]byte("z"))))
	require.NoError(t, tr.Insert("apple", Hash([]byte("a"))))
	require.NoError(t, tr.Insert("mango", Hash([]byte("m"))))

	entries := tr.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "apple", entries[0].Name)
	assert.Equal(t, "mango", entries[1].Name)
	assert.Equal(t, "zebra", entries[2].Name)
}

func TestTreeInsertReplacesExisting(t *testing.T) {
	tr := NewTree()
	h1 := Hash([]byte("one"))
	h2 := Hash([]byte("two"))
	require.NoError(t, tr.Insert("name", h1))
	require.NoError(t, tr.Insert("name", h2))

	assert.Equal(t, 1, tr.Len())
	got, ok := tr.Get("name")
	require.True(t, ok)
	assert.Equal(t, h2, got)
}

func TestTreeGetMissing(t *testing.T) {
	tr := NewTree()
	_, ok := tr.Get("missing")
	assert.False(t, ok)
}

func TestTreeRoundTrip(t *testing.T) {
	tr := NewTree()
	require.NoError(t, tr.Insert("b.txt", Hash([]byte("b"))))
	require.NoError(t, tr.Insert("a.txt", Hash([]byte("a"))))
	require.NoError(t, tr.Insert("c.txt", Hash([]byte("c"))))

	content, err := tr.EncodedContent()
	require.NoError(t, err)

	got, err := ParseTree(content)
	require.NoError(t, err)
	assert.Equal(t, tr.Entries(), got.Entries())
}

func TestTreeEmptyRoundTrip(t *testing.T) {
	tr := NewTree()
	content, err := tr.EncodedContent()
	require.NoError(t, err)
	assert.Empty(t, content)

	got, err := ParseTree(content)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func TestParseTreeRejectsOutOfOrderEntries(t *testing.T) {
	var content []byte
	h := Hash([]byte("x"))
	content = append(content, h[:]...)
	content = append(content, []byte("zebra\n")...)
	content = append(content, h[:]...)
	content = append(content, []byte("apple\n")...)

	_, err := ParseTree(content)
	assert.Error(t, err)
}

func TestParseTreeRejectsMissingNewline(t *testing.T) {
	h := Hash([]byte("x"))
	content := append(h[:], []byte("noterm")...)
	_, err := ParseTree(content)
	assert.Error(t, err)
}

func TestParseTreeRejectsTruncatedHash(t *testing.T) {
	_, err := ParseTree([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestTreeType(t *testing.T) {
	assert.Equal(t, TypeTree, NewTree().Type())
}
