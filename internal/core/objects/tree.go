package objects

import (
	"bytes"
	"fmt"
	"sort"
)

// TreeEntry is one name-to-object mapping inside a Tree.
type TreeEntry struct {
	Name string
	Hash ObjectKey
}

// Tree is a directory snapshot: an ordered map from file name to object
// hash. Entries are always kept sorted by ascending name bytes, so
// serialization order is ascending name order regardless of insert order
// (spec.md §3's "Entries are serialized in ascending name-byte order").
type Tree struct {
	entries []TreeEntry
}

// NewTree returns an empty Tree.
func NewTree() *Tree {
	return &Tree{}
}

// ValidName reports whether name is an acceptable tree entry name: non-empty,
// not "." or "..", and free of '/', NUL, and the 0x0A entry terminator
// (spec.md §4.3).
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	for i := 0; i < len(name); i++ {
		if name[i] == '/' || name[i] == 0x00 || name[i] == '\n' {
			return false
		}
	}
	return true
}

// Insert adds or replaces the entry for name. Returns an error if name is
// not a valid tree entry name.
func (t *Tree) Insert(name string, hash ObjectKey) error {
	if !ValidName(name) {
		return fmt.Errorf("invalid tree entry name %q", name)
	}
	i := sort.Search(len(t.entries), func(i int) bool { return t.entries[i].Name >= name })
	if i < len(t.entries) && t.entries[i].Name == name {
		t.entries[i].Hash = hash
		return nil
	}
	t.entries = append(t.entries, TreeEntry{})
	copy(t.entries[i+1:], t.entries[i:])
	t.entries[i] = TreeEntry{Name: name, Hash: hash}
	return nil
}

// Entries returns the tree's entries in ascending name order. The returned
// slice must not be mutated by the caller.
func (t *Tree) Entries() []TreeEntry {
	return t.entries
}

// Len returns the number of entries.
func (t *Tree) Len() int {
	return len(t.entries)
}

// Get looks up an entry by name.
func (t *Tree) Get(name string) (ObjectKey, bool) {
	i := sort.Search(len(t.entries), func(i int) bool { return t.entries[i].Name >= name })
	if i < len(t.entries) && t.entries[i].Name == name {
		return t.entries[i].Hash, true
	}
	return ObjectKey{}, false
}

// Type implements Object.
func (t *Tree) Type() ObjectType { return TypeTree }

// EncodedContent implements Object per spec.md §4.3: repeated
// (hash 20 bytes || name_bytes || 0x0A).
func (t *Tree) EncodedContent() ([]byte, error) {
	var buf bytes.Buffer
	for _, e := range t.entries {
		if !ValidName(e.Name) {
			return nil, fmt.Errorf("invalid tree entry name %q", e.Name)
		}
		buf.Write(e.Hash[:])
		buf.WriteString(e.Name)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// ParseTree reconstructs a Tree from its content region, validating that
// entries arrive in strictly ascending name order (spec.md §8's ordering
// testable property).
func ParseTree(content []byte) (*Tree, error) {
	t := &Tree{}
	var prevName string
	first := true
	for len(content) > 0 {
		if len(content) < KeySize {
			return nil, fmt.Errorf("parse tree: truncated entry, %d bytes left", len(content))
		}
		var hash ObjectKey
		copy(hash[:], content[:KeySize])
		content = content[KeySize:]

		nl := bytes.IndexByte(content, '\n')
		if nl == -1 {
			return nil, fmt.Errorf("parse tree: entry missing newline terminator")
		}
		name := string(content[:nl])
		content = content[nl+1:]

		if !ValidName(name) {
			return nil, fmt.Errorf("parse tree: invalid entry name %q", name)
		}
		if !first && name <= prevName {
			return nil, fmt.Errorf("parse tree: entries out of order (%q after %q)", name, prevName)
		}
		prevName = name
		first = false

		t.entries = append(t.entries, TreeEntry{Name: name, Hash: hash})
	}
	return t, nil
}
