package objects

// Blob is an immutable byte sequence stored as a single object. Chunking
// guarantees blobs are small enough to hold comfortably in memory.
type Blob struct {
	Content []byte
}

// NewBlob wraps data in a Blob. The caller's slice is not copied.
func NewBlob(data []byte) *Blob {
	if data == nil {
		data = []byte{}
	}
	return &Blob{Content: data}
}

// Type implements Object.
func (b *Blob) Type() ObjectType { return TypeBlob }

// Size returns the content length.
func (b *Blob) Size() int64 { return int64(len(b.Content)) }

// EncodedContent implements Object: a Blob's content region is its raw bytes.
func (b *Blob) EncodedContent() ([]byte, error) {
	return b.Content, nil
}

// ParseBlob reconstructs a Blob from its content region.
func ParseBlob(content []byte) (*Blob, error) {
	return &Blob{Content: content}, nil
}
