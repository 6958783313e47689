package objects

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// Commit is a point-in-time snapshot: a tree plus zero or more parent
// commits and a free-form message. There is no author/committer identity
// in this object model (spec.md §3).
type Commit struct {
	Tree    ObjectKey
	Parents []ObjectKey
	Message []byte
}

// NewCommit builds a Commit. parents may be nil or empty for a root commit.
func NewCommit(tree ObjectKey, parents []ObjectKey, message []byte) *Commit {
	return &Commit{Tree: tree, Parents: parents, Message: message}
}

// Type implements Object.
func (c *Commit) Type() ObjectType { return TypeCommit }

// EncodedContent implements Object per spec.md §4.3:
//
//	tree <hex>\n
//	parent <hex>\n     (zero or more, in order)
//	\n
//	<message bytes, verbatim>
func (c *Commit) EncodedContent() ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", c.Tree.String())
	for _, p := range c.Parents {
		fmt.Fprintf(&buf, "parent %s\n", p.String())
	}
	buf.WriteByte('\n')
	buf.Write(c.Message)
	return buf.Bytes(), nil
}

// ParseCommit reconstructs a Commit from its content region.
func ParseCommit(content []byte) (*Commit, error) {
	r := bufio.NewReader(bytes.NewReader(content))
	c := &Commit{}

	treeLine, err := r.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("parse commit: missing tree line: %w", err)
	}
	treeHex := strings.TrimSuffix(treeLine, "\n")
	if !strings.HasPrefix(treeHex, "tree ") {
		return nil, fmt.Errorf("parse commit: expected \"tree <hex>\" line, got %q", treeLine)
	}
	tree, err := ParseKey(strings.TrimPrefix(treeHex, "tree "))
	if err != nil {
		return nil, fmt.Errorf("parse commit: bad tree hash: %w", err)
	}
	c.Tree = tree

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("parse commit: unterminated header: %w", err)
		}
		if line == "\n" {
			break
		}
		trimmed := strings.TrimSuffix(line, "\n")
		if !strings.HasPrefix(trimmed, "parent ") {
			return nil, fmt.Errorf("parse commit: expected \"parent <hex>\" line, got %q", line)
		}
		parent, err := ParseKey(strings.TrimPrefix(trimmed, "parent "))
		if err != nil {
			return nil, fmt.Errorf("parse commit: bad parent hash: %w", err)
		}
		c.Parents = append(c.Parents, parent)
	}

	var msg bytes.Buffer
	if _, err := msg.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parse commit: reading message: %w", err)
	}
	c.Message = msg.Bytes()
	return c, nil
}
