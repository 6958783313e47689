package objects

import (
	"fmt"
	"io"
)

// ObjectHandle wraps a reader positioned at the start of a stored object: its
// header has already been parsed, and its content region has not yet been
// consumed. Callers choose whether to stream the content (CopyContent, used
// for large Blobs) or fully parse it into an Object (Parse, used for the
// small index objects: ChunkedBlob, Tree, Commit).
type ObjectHandle struct {
	Header ObjectHeader
	r      io.Reader
}

// OpenHandle reads and validates the header from r, returning a handle over
// the remaining, unconsumed content region.
func OpenHandle(r io.Reader) (*ObjectHandle, error) {
	header, err := ReadObjectHeader(r)
	if err != nil {
		return nil, err
	}
	return &ObjectHandle{Header: header, r: r}, nil
}

// CopyContent streams the object's content region to w without buffering it
// in memory, returning the number of bytes copied. Intended for Blob content,
// which may be up to MaxChunkSize bytes.
func (h *ObjectHandle) CopyContent(w io.Writer) (int64, error) {
	n, err := io.CopyN(w, h.r, int64(h.Header.ContentSize))
	if err != nil {
		return n, fmt.Errorf("copy object content: %w", err)
	}
	return n, nil
}

// Parse fully reads and decodes the content region into an Object.
func (h *ObjectHandle) Parse() (Object, error) {
	return ReadObjectContent(h.Header, h.r)
}
