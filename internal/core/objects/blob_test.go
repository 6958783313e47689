package objects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBlobNilContent(t *testing.T) {
	b := NewBlob(nil)
	assert.Equal(t, []byte{}, b.Content)
	assert.Equal(t, int64(0), b.Size())
}

func TestBlobEncodedContentIsRawBytes(t *testing.T) {
	b := NewBlob([]byte("payload"))
	content, err := b.EncodedContent()
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), content)
}

func TestParseBlobRoundTrip(t *testing.T) {
	b := NewBlob([]byte("round trip"))
	content, err := b.EncodedContent()
	require.NoError(t, err)

	got, err := ParseBlob(content)
	require.NoError(t, err)
	assert.Equal(t, b.Content, got.Content)
}

func TestBlobType(t *testing.T) {
	assert.Equal(t, TypeBlob, NewBlob(nil).Type())
}
