package objects

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ObjectType identifies which of the four DAG object variants a stored
// object is. The on-disk encoding is a single byte (spec.md §4.3); the
// values below MUST NOT change without a format version bump.
type ObjectType uint8

const (
	TypeBlob        ObjectType = 1
	TypeChunkedBlob ObjectType = 2
	TypeTree        ObjectType = 3
	TypeCommit      ObjectType = 4
)

// String renders the object type the way commands like show-object print it.
func (t ObjectType) String() string {
	switch t {
	case TypeBlob:
		return "blob"
	case TypeChunkedBlob:
		return "chunked-blob"
	case TypeTree:
		return "tree"
	case TypeCommit:
		return "commit"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// IsValid reports whether t is one of the four defined object types.
func (t ObjectType) IsValid() bool {
	switch t {
	case TypeBlob, TypeChunkedBlob, TypeTree, TypeCommit:
		return true
	default:
		return false
	}
}

// Object is implemented by all four DAG object variants. EncodedContent
// returns only the content region (everything after the header); the header
// is written by EncodeObject, which needs the content's length for the
// header's content_size and so calls EncodedContent before writing anything.
type Object interface {
	Type() ObjectType
	// EncodedContent returns the exact bytes of the content region, as
	// defined by spec.md §4.3's per-type encoding.
	EncodedContent() ([]byte, error)
}

// ObjectHeader is the 9-byte prefix of every stored object: a 1-byte type
// tag followed by a big-endian 8-byte content length (spec.md §4.3).
type ObjectHeader struct {
	Type        ObjectType
	ContentSize uint64
}

// WriteTo writes the header to w in the wire format defined by spec.md §4.3.
func (h ObjectHeader) WriteTo(w io.Writer) error {
	var buf [9]byte
	buf[0] = byte(h.Type)
	binary.BigEndian.PutUint64(buf[1:], h.ContentSize)
	_, err := w.Write(buf[:])
	return err
}

// ReadObjectHeader parses and validates a header from r.
func ReadObjectHeader(r io.Reader) (ObjectHeader, error) {
	var buf [9]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return ObjectHeader{}, fmt.Errorf("read object header: %w", err)
	}
	h := ObjectHeader{
		Type:        ObjectType(buf[0]),
		ContentSize: binary.BigEndian.Uint64(buf[1:]),
	}
	if !h.Type.IsValid() {
		return ObjectHeader{}, fmt.Errorf("read object header: invalid object type byte %d", buf[0])
	}
	return h, nil
}

// EncodeObject writes the full wire representation of obj (header followed
// by content) to w, returning the resulting ObjectKey. w is wrapped in a
// HashWriter so that the hash is computed over the same bytes as were
// written, in a single pass.
func EncodeObject(w io.Writer, obj Object) (ObjectKey, error) {
	content, err := obj.EncodedContent()
	if err != nil {
		return ObjectKey{}, fmt.Errorf("encode object content: %w", err)
	}
	hw := NewHashWriter(w)
	header := ObjectHeader{Type: obj.Type(), ContentSize: uint64(len(content))}
	if err := header.WriteTo(hw); err != nil {
		return ObjectKey{}, fmt.Errorf("write object header: %w", err)
	}
	if _, err := hw.Write(content); err != nil {
		return ObjectKey{}, fmt.Errorf("write object content: %w", err)
	}
	return hw.Finalize(), nil
}

// ObjectKeyOf computes the ObjectKey for obj without writing it anywhere.
func ObjectKeyOf(obj Object) (ObjectKey, error) {
	return EncodeObject(io.Discard, obj)
}

// ReadObjectContent parses the content region of an object given its
// already-read header, dispatching on header.Type.
func ReadObjectContent(header ObjectHeader, r io.Reader) (Object, error) {
	content := make([]byte, header.ContentSize)
	if _, err := io.ReadFull(r, content); err != nil {
		return nil, fmt.Errorf("read object content: %w", err)
	}
	switch header.Type {
	case TypeBlob:
		return ParseBlob(content)
	case TypeChunkedBlob:
		return ParseChunkedBlob(content)
	case TypeTree:
		return ParseTree(content)
	case TypeCommit:
		return ParseCommit(content)
	default:
		return nil, fmt.Errorf("read object content: invalid object type %v", header.Type)
	}
}
