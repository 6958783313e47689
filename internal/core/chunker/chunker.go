// Package chunker splits a byte stream into content-defined chunks and
// assembles the resulting Blob / ChunkedBlob objects.
package chunker

import (
	"fmt"
	"io"

	resticchunker "github.com/restic/chunker"

	"github.com/fenilsonani/prototype/internal/core/objects"
)

// Chunk size parameters. These are part of the on-disk format (spec.md §4.2)
// and must never change without a format version bump: changing them would
// re-chunk every file differently and break content-addressing continuity.
//
// MinChunkSize and MaxChunkSize are hard boundaries enforced by
// resticchunker.NewWithBoundaries below. ChunkTargetSize is nominal only:
// restic/chunker derives its actual average chunk size from pol's bit-mask
// (fixed at construction, not a constructor parameter), so this constant
// documents the target this polynomial was chosen for rather than a value
// wired into the chunker itself.
const (
	MinChunkSize    = 64 * 1024
	MaxChunkSize    = 4 * 1024 * 1024
	ChunkTargetSize = 512 * 1024
)

// pol is a fixed Rabin polynomial, chosen once and never regenerated at
// runtime. A randomly-generated polynomial (as restic itself uses, one per
// repository) would make chunk boundaries vary across runs and break
// content-addressing: two machines hashing the same file must get the same
// chunks.
const pol resticchunker.Pol = 0x3DA3358B4DC173

// Stream is anything that can be chunked: an io.Reader is sufficient.
type Stream = io.Reader

// Result holds the objects produced by chunking one stream: one Blob per
// chunk (exactly one, possibly empty, for small or empty inputs) plus, when
// the input spans more than one chunk, the ChunkedBlob index tying them
// together, and the root ObjectKey to record (the ChunkedBlob's key, not any
// one Blob's).
type Result struct {
	// Blobs holds every Blob object produced, in stream order.
	Blobs []*objects.Blob
	// ChunkedBlob is non-nil only when the stream produced more than one chunk.
	ChunkedBlob *objects.ChunkedBlob
	// Root is the ObjectKey that should represent this stream as a whole:
	// the sole Blob's key for single-chunk (or empty) streams, or the
	// ChunkedBlob's key otherwise.
	Root objects.ObjectKey
}

// Chunk splits r into content-defined chunks using restic's rolling-hash
// chunker and returns the resulting DAG objects, without storing them.
func Chunk(r Stream) (*Result, error) {
	c := resticchunker.NewWithBoundaries(r, pol, MinChunkSize, MaxChunkSize)
	buf := make([]byte, MaxChunkSize)

	res := &Result{}
	cb := objects.NewChunkedBlob()

	for {
		chunk, err := c.Next(buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("chunk stream: %w", err)
		}

		data := make([]byte, chunk.Length)
		copy(data, chunk.Data)
		blob := objects.NewBlob(data)
		res.Blobs = append(res.Blobs, blob)

		key, err := objects.ObjectKeyOf(blob)
		if err != nil {
			return nil, fmt.Errorf("chunk stream: hash chunk: %w", err)
		}
		cb.AddChunk(uint64(len(data)), key)
	}

	switch len(res.Blobs) {
	case 0:
		// Empty stream: a single empty Blob, not a zero-chunk ChunkedBlob.
		blob := objects.NewBlob(nil)
		res.Blobs = []*objects.Blob{blob}
		key, err := objects.ObjectKeyOf(blob)
		if err != nil {
			return nil, fmt.Errorf("chunk stream: hash empty blob: %w", err)
		}
		res.Root = key
	case 1:
		key, err := objects.ObjectKeyOf(res.Blobs[0])
		if err != nil {
			return nil, fmt.Errorf("chunk stream: hash single blob: %w", err)
		}
		res.Root = key
	default:
		res.ChunkedBlob = cb
		key, err := objects.ObjectKeyOf(cb)
		if err != nil {
			return nil, fmt.Errorf("chunk stream: hash chunked blob: %w", err)
		}
		res.Root = key
	}
	return res, nil
}
