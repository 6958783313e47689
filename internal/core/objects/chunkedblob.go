package objects

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// ChunkRecord is one entry in a ChunkedBlob's index: the blob that holds
// bytes [Offset, Offset+Size) of the logical stream.
type ChunkRecord struct {
	Offset uint64
	Size   uint64
	Hash   ObjectKey
}

// ChunkedBlob is an index object describing a logical byte sequence too
// large to store as a single Blob: an ordered list of chunk records plus
// the total logical size. Invariants (spec.md §3): offsets strictly
// increasing, Offsets[i+1] == Offsets[i]+Sizes[i], Offsets[0] == 0,
// sum(Sizes) == TotalSize.
type ChunkedBlob struct {
	TotalSize uint64
	Chunks    []ChunkRecord
}

// NewChunkedBlob returns an empty ChunkedBlob ready for AddChunk calls.
func NewChunkedBlob() *ChunkedBlob {
	return &ChunkedBlob{}
}

// AddChunk appends a chunk record. Offset is inferred from the running
// total, so chunks must be added in stream order.
func (cb *ChunkedBlob) AddChunk(size uint64, hash ObjectKey) {
	cb.Chunks = append(cb.Chunks, ChunkRecord{
		Offset: cb.TotalSize,
		Size:   size,
		Hash:   hash,
	})
	cb.TotalSize += size
}

// Type implements Object.
func (cb *ChunkedBlob) Type() ObjectType { return TypeChunkedBlob }

// EncodedContent implements Object per spec.md §4.3:
// total_size (u64 BE), n (u32 BE), then n records of
// (offset u64 BE, size u64 BE, hash 20 bytes).
func (cb *ChunkedBlob) EncodedContent() ([]byte, error) {
	var buf bytes.Buffer
	var head [12]byte
	binary.BigEndian.PutUint64(head[0:8], cb.TotalSize)
	binary.BigEndian.PutUint32(head[8:12], uint32(len(cb.Chunks)))
	buf.Write(head[:])

	for _, c := range cb.Chunks {
		var rec [8 + 8 + KeySize]byte
		binary.BigEndian.PutUint64(rec[0:8], c.Offset)
		binary.BigEndian.PutUint64(rec[8:16], c.Size)
		copy(rec[16:], c.Hash[:])
		buf.Write(rec[:])
	}
	return buf.Bytes(), nil
}

// ParseChunkedBlob reconstructs a ChunkedBlob from its content region.
func ParseChunkedBlob(content []byte) (*ChunkedBlob, error) {
	if len(content) < 12 {
		return nil, fmt.Errorf("parse chunked blob: content too short for header (%d bytes)", len(content))
	}
	cb := &ChunkedBlob{
		TotalSize: binary.BigEndian.Uint64(content[0:8]),
	}
	n := binary.BigEndian.Uint32(content[8:12])
	rest := content[12:]

	const recSize = 8 + 8 + KeySize
	if uint64(len(rest)) != uint64(n)*recSize {
		return nil, fmt.Errorf("parse chunked blob: expected %d bytes of chunk records, got %d", uint64(n)*recSize, len(rest))
	}

	cb.Chunks = make([]ChunkRecord, 0, n)
	for i := uint32(0); i < n; i++ {
		off := i * recSize
		rec := rest[off : off+recSize]
		var c ChunkRecord
		c.Offset = binary.BigEndian.Uint64(rec[0:8])
		c.Size = binary.BigEndian.Uint64(rec[8:16])
		copy(c.Hash[:], rec[16:16+KeySize])
		cb.Chunks = append(cb.Chunks, c)
	}
	return cb, nil
}
