package chunker

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomBytes(t *testing.T, n int, seed int64) []byte {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	data := make([]byte, n)
	_, err := r.Read(data)
	require.NoError(t, err)
	return data
}

func TestChunkEmptyStream(t *testing.T) {
	res, err := Chunk(bytes.NewReader(nil))
	require.NoError(t, err)
	require.Len(t, res.Blobs, 1)
	assert.Empty(t, res.Blobs[0].Content)
	assert.Nil(t, res.ChunkedBlob)
}

func TestChunkSmallStreamIsSingleBlob(t *testing.T) {
	data := []byte("a small file that fits in one chunk")
	res, err := Chunk(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, res.Blobs, 1)
	assert.Equal(t, data, res.Blobs[0].Content)
	assert.Nil(t, res.ChunkedBlob)
}

func TestChunkLargeStreamProducesChunkedBlob(t *testing.T) {
	data := randomBytes(t, ChunkTargetSize*8, 42)
	res, err := Chunk(bytes.NewReader(data))
	require.NoError(t, err)

	if len(res.Blobs) > 1 {
		require.NotNil(t, res.ChunkedBlob)
		assert.Len(t, res.ChunkedBlob.Chunks, len(res.Blobs))
		assert.Equal(t, uint64(len(data)), res.ChunkedBlob.TotalSize)
	}
}

func TestChunkBoundariesRespectMinMax(t *testing.T) {
	data := randomBytes(t, ChunkTargetSize*16, 7)
	res, err := Chunk(bytes.NewReader(data))
	require.NoError(t, err)

	for i, b := range res.Blobs {
		if i == len(res.Blobs)-1 {
			// final chunk may be shorter than MinChunkSize
			continue
		}
		assert.GreaterOrEqual(t, len(b.Content), MinChunkSize)
		assert.LessOrEqual(t, len(b.Content), MaxChunkSize)
	}
}

func TestChunkReassemblesOriginal(t *testing.T) {
	data := randomBytes(t, ChunkTargetSize*5, 99)
	res, err := Chunk(bytes.NewReader(data))
	require.NoError(t, err)

	var got bytes.Buffer
	for _, b := range res.Blobs {
		got.Write(b.Content)
	}
	assert.Equal(t, data, got.Bytes())
}

func TestChunkIsDeterministic(t *testing.T) {
	data := randomBytes(t, ChunkTargetSize*6, 123)

	res1, err := Chunk(bytes.NewReader(data))
	require.NoError(t, err)
	res2, err := Chunk(bytes.NewReader(data))
	require.NoError(t, err)

	require.Equal(t, len(res1.Blobs), len(res2.Blobs))
	for i := range res1.Blobs {
		assert.Equal(t, res1.Blobs[i].Content, res2.Blobs[i].Content)
	}
	assert.Equal(t, res1.Root, res2.Root)
}

func TestChunkOffsetsAreContiguous(t *testing.T) {
	data := randomBytes(t, ChunkTargetSize*10, 55)
	res, err := Chunk(bytes.NewReader(data))
	require.NoError(t, err)
	if res.ChunkedBlob == nil {
		t.Skip("input fit in a single chunk")
	}

	var want uint64
	for _, c := range res.ChunkedBlob.Chunks {
		assert.Equal(t, want, c.Offset)
		want += c.Size
	}
	assert.Equal(t, res.ChunkedBlob.TotalSize, want)
}
