package objects

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKeyString(t *testing.T) {
	k, err := ParseKey("da39a3ee5e6b4b0d3255bfef95601890afd80709")
	require.NoError(t, err)
	assert.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", k.String())
	assert.Equal(t, "da39a3ee", k.Short())
}

func TestParseKeyRejectsBadLength(t *testing.T) {
	_, err := ParseKey("abcd")
	assert.Error(t, err)
}

func TestParseKeyRejectsBadHex(t *testing.T) {
	_, err := ParseKey("zz39a3ee5e6b4b0d3255bfef95601890afd80709")
	assert.Error(t, err)
}

func TestObjectKeyCompare(t *testing.T) {
	a := ObjectKey{0x01}
	b := ObjectKey{0x02}
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
}

func TestObjectKeyIsZero(t *testing.T) {
	assert.True(t, ZeroKey.IsZero())
	k, _ := ParseKey("da39a3ee5e6b4b0d3255bfef95601890afd80709")
	assert.False(t, k.IsZero())
}

func TestHashWriterForwardsAndHashes(t *testing.T) {
	var out bytes.Buffer
	hw := NewHashWriter(&out)
	n, err := hw.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", out.String())

	expected := Hash([]byte("hello"))
	assert.Equal(t, expected, hw.Finalize())
}

func TestObjectKeyJSONRoundTrip(t *testing.T) {
	k := Hash([]byte("json me"))
	data, err := json.Marshal(k)
	require.NoError(t, err)
	assert.Equal(t, `"`+k.String()+`"`, string(data))

	var got ObjectKey
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, k, got)
}

func TestEmptyBlobContentIsEmpty(t *testing.T) {
	blob := NewBlob(nil)
	content, err := blob.EncodedContent()
	require.NoError(t, err)
	assert.Empty(t, content)

	key, err := ObjectKeyOf(blob)
	require.NoError(t, err)
	assert.False(t, key.IsZero())
}
