package objects

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash"
	"io"
)

// KeySize is the width in bytes of an ObjectKey.
const KeySize = 20

// ObjectKey is the 20-byte content hash that identifies a stored object.
// The zero value is reserved to mean "no object".
type ObjectKey [KeySize]byte

// ZeroKey is the reserved "no object" key.
var ZeroKey = ObjectKey{}

// String returns the 40-character lowercase hex form of the key.
func (k ObjectKey) String() string {
	return hex.EncodeToString(k[:])
}

// Short returns the first 8 hex characters, for display.
func (k ObjectKey) Short() string {
	return k.String()[:8]
}

// IsZero returns true if k is the reserved "no object" key.
func (k ObjectKey) IsZero() bool {
	return k == ZeroKey
}

// Compare orders two keys by byte value, returning -1, 0, or 1.
func (k ObjectKey) Compare(other ObjectKey) int {
	for i := range k {
		if k[i] != other[i] {
			if k[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// ParseKey parses a 40-character hex string into an ObjectKey.
func ParseKey(hexStr string) (ObjectKey, error) {
	var k ObjectKey
	if len(hexStr) != KeySize*2 {
		return k, fmt.Errorf("invalid object key length: expected %d, got %d", KeySize*2, len(hexStr))
	}
	decoded, err := hex.DecodeString(hexStr)
	if err != nil {
		return k, fmt.Errorf("invalid hex string %q: %w", hexStr, err)
	}
	copy(k[:], decoded)
	return k, nil
}

// Hash computes the raw SHA-1 of data, with no header framing. Object
// identity (header || content) is computed via HashWriter instead; this is
// exposed for callers, such as tests, that need a plain content hash.
func Hash(data []byte) ObjectKey {
	sum := sha1.Sum(data)
	var k ObjectKey
	copy(k[:], sum[:])
	return k
}

// HashWriter wraps an underlying writer; every byte written through it is
// both passed on to the wrapped writer and folded into a running hash.
// Finalize yields the ObjectKey for everything written so far.
type HashWriter struct {
	w io.Writer
	h hash.Hash
}

// NewHashWriter wraps w so writes through the returned HashWriter are
// forwarded to w and hashed incrementally.
func NewHashWriter(w io.Writer) *HashWriter {
	return &HashWriter{w: w, h: sha1.New()}
}

func (hw *HashWriter) Write(p []byte) (int, error) {
	n, err := hw.w.Write(p)
	if n > 0 {
		hw.h.Write(p[:n])
	}
	return n, err
}

// Finalize returns the ObjectKey for all bytes written so far.
func (hw *HashWriter) Finalize() ObjectKey {
	var k ObjectKey
	copy(k[:], hw.h.Sum(nil))
	return k
}

// MarshalJSON renders the key as its hex string, matching the on-disk cache
// and ref file formats.
func (k ObjectKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON parses a hex string into the key.
func (k *ObjectKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("unmarshal object key: %w", err)
	}
	parsed, err := ParseKey(s)
	if err != nil {
		return fmt.Errorf("unmarshal object key: %w", err)
	}
	*k = parsed
	return nil
}
