// Package objectstore implements the on-disk, content-addressed object
// store: persisting and fetching DAG objects by hash, plus the small
// key/value ref files that record branch tips.
package objectstore

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fenilsonani/prototype/internal/core/objects"
)

// ErrObjectNotFound is returned by OpenObject when no file exists for a hash.
type ErrObjectNotFound struct {
	Hash objects.ObjectKey
}

func (e *ErrObjectNotFound) Error() string {
	return fmt.Sprintf("object not found: %s", e.Hash)
}

// ErrCorruptObject is returned when a stored object fails to parse.
type ErrCorruptObject struct {
	Hash   objects.ObjectKey
	Reason string
}

func (e *ErrCorruptObject) Error() string {
	return fmt.Sprintf("corrupt object %s: %s", e.Hash, e.Reason)
}

// Store is a filesystem-backed object store rooted at Root (spec.md §4.4).
type Store struct {
	Root string
}

// Open wraps an existing root directory without touching the filesystem.
// Use Init to create a fresh store.
func Open(root string) *Store {
	return &Store{Root: root}
}

// Init creates objects/, tmp/, and refs/ under root. Fails if root already
// exists as a non-empty directory with unrelated contents.
func Init(root string) (*Store, error) {
	entries, err := os.ReadDir(root)
	if err == nil && len(entries) > 0 {
		if !looksLikeStore(entries) {
			return nil, fmt.Errorf("init object store: %s exists and is not empty", root)
		}
	} else if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("init object store: %w", err)
	}

	for _, sub := range []string{"objects", "tmp", "refs"} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return nil, fmt.Errorf("init object store: create %s: %w", sub, err)
		}
	}
	return &Store{Root: root}, nil
}

func looksLikeStore(entries []os.DirEntry) bool {
	known := map[string]bool{"objects": true, "tmp": true, "refs": true, "HEAD": true}
	for _, e := range entries {
		if !known[e.Name()] {
			return false
		}
	}
	return true
}

func (s *Store) objectPath(key objects.ObjectKey) string {
	h := key.String()
	return filepath.Join(s.Root, "objects", h[0:2], h[2:4], h[4:])
}

// HasObject reports whether an object file exists for key.
func (s *Store) HasObject(key objects.ObjectKey) bool {
	_, err := os.Stat(s.objectPath(key))
	return err == nil
}

// OpenObject opens the file for key and parses its header, returning a
// handle over the unconsumed content region. The caller must close the
// returned file handle (via Close) when done.
func (s *Store) OpenObject(key objects.ObjectKey) (*ObjectReader, error) {
	f, err := os.Open(s.objectPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ErrObjectNotFound{Hash: key}
		}
		return nil, fmt.Errorf("open object %s: %w", key, err)
	}
	handle, err := objects.OpenHandle(f)
	if err != nil {
		f.Close()
		return nil, &ErrCorruptObject{Hash: key, Reason: err.Error()}
	}
	return &ObjectReader{Handle: handle, file: f}, nil
}

// ObjectReader pairs an ObjectHandle with the open file backing it.
type ObjectReader struct {
	Handle *objects.ObjectHandle
	file   *os.File
}

// Close releases the underlying file.
func (r *ObjectReader) Close() error {
	return r.file.Close()
}

// StoreObject serializes obj to a fresh temp file while computing its hash,
// then renames it into place. If an object with the resulting hash already
// exists, the temp file is discarded (the store is idempotent).
func (s *Store) StoreObject(obj objects.Object) (objects.ObjectKey, error) {
	tmpPath, tmpFile, err := s.createTemp()
	if err != nil {
		return objects.ObjectKey{}, err
	}
	defer os.Remove(tmpPath)

	key, err := objects.EncodeObject(tmpFile, obj)
	if err != nil {
		tmpFile.Close()
		return objects.ObjectKey{}, fmt.Errorf("store object: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return objects.ObjectKey{}, fmt.Errorf("store object: sync: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return objects.ObjectKey{}, fmt.Errorf("store object: close: %w", err)
	}

	dest := s.objectPath(key)
	if _, err := os.Stat(dest); err == nil {
		return key, nil
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return objects.ObjectKey{}, fmt.Errorf("store object: mkdir: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return objects.ObjectKey{}, fmt.Errorf("store object: rename: %w", err)
	}
	return key, nil
}

func (s *Store) createTemp() (string, *os.File, error) {
	var nameBuf [16]byte
	if _, err := rand.Read(nameBuf[:]); err != nil {
		return "", nil, fmt.Errorf("create temp object: %w", err)
	}
	name := hex.EncodeToString(nameBuf[:])
	path := filepath.Join(s.Root, "tmp", name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", nil, fmt.Errorf("create temp object: %w", err)
	}
	return path, f, nil
}

// CopyBlobContent resolves a Blob or ChunkedBlob by hash and streams its
// logical content to w in order, recursing through chunk references.
func (s *Store) CopyBlobContent(key objects.ObjectKey, w io.Writer) error {
	r, err := s.OpenObject(key)
	if err != nil {
		return err
	}
	defer r.Close()

	switch r.Handle.Header.Type {
	case objects.TypeBlob:
		if _, err := r.Handle.CopyContent(w); err != nil {
			return fmt.Errorf("copy blob content %s: %w", key, err)
		}
		return nil
	case objects.TypeChunkedBlob:
		obj, err := r.Handle.Parse()
		if err != nil {
			return &ErrCorruptObject{Hash: key, Reason: err.Error()}
		}
		cb := obj.(*objects.ChunkedBlob)
		for _, chunk := range cb.Chunks {
			if err := s.CopyBlobContent(chunk.Hash, w); err != nil {
				return err
			}
		}
		return nil
	default:
		return &ErrCorruptObject{Hash: key, Reason: fmt.Sprintf("expected blob or chunked-blob, got %s", r.Handle.Header.Type)}
	}
}

// LoadObject fully reads and parses an object by hash.
func (s *Store) LoadObject(key objects.ObjectKey) (objects.Object, error) {
	r, err := s.OpenObject(key)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	obj, err := r.Handle.Parse()
	if err != nil {
		return nil, &ErrCorruptObject{Hash: key, Reason: err.Error()}
	}
	return obj, nil
}

func (s *Store) refPath(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, "/\\") {
		return "", fmt.Errorf("invalid ref name %q", name)
	}
	return filepath.Join(s.Root, "refs", name), nil
}

// UpdateRef writes hash as the ref named name.
func (s *Store) UpdateRef(name string, hash objects.ObjectKey) error {
	path, err := s.refPath(name)
	if err != nil {
		return err
	}
	content := hash.String() + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("update ref %s: %w", name, err)
	}
	return nil
}

// ReadRef reads the hash stored under name. Returns an error wrapping
// os.ErrNotExist if the ref does not exist.
func (s *Store) ReadRef(name string) (objects.ObjectKey, error) {
	path, err := s.refPath(name)
	if err != nil {
		return objects.ObjectKey{}, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return objects.ObjectKey{}, fmt.Errorf("read ref %s: %w", name, err)
	}
	key, err := objects.ParseKey(strings.TrimSpace(string(content)))
	if err != nil {
		return objects.ObjectKey{}, fmt.Errorf("read ref %s: %w", name, err)
	}
	return key, nil
}

// ListRefs returns every ref name present under refs/.
func (s *Store) ListRefs() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.Root, "refs"))
	if err != nil {
		return nil, fmt.Errorf("list refs: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// ErrBadRevSpec indicates text was neither a hex object hash nor a known
// branch name.
type ErrBadRevSpec struct {
	Text string
}

func (e *ErrBadRevSpec) Error() string {
	return fmt.Sprintf("bad rev spec: %q is neither a hash nor a known branch", e.Text)
}

// ResolveRev interprets text as a literal 40-character hex hash, falling
// back to a branch name lookup under refs/.
func (s *Store) ResolveRev(text string) (objects.ObjectKey, error) {
	if key, err := objects.ParseKey(text); err == nil {
		return key, nil
	}
	key, err := s.ReadRef(text)
	if err != nil {
		return objects.ObjectKey{}, &ErrBadRevSpec{Text: text}
	}
	return key, nil
}

const headRefPrefix = "ref: "

// HeadState is the parsed contents of R/HEAD: either a symbolic ref to a
// branch (Branch set, Hash nil) or a detached literal hash (Hash set,
// Branch empty), per spec.md §6.
type HeadState struct {
	Branch string
	Hash   *objects.ObjectKey
}

// ReadHEAD reads and parses R/HEAD.
func (s *Store) ReadHEAD() (HeadState, error) {
	content, err := os.ReadFile(filepath.Join(s.Root, "HEAD"))
	if err != nil {
		return HeadState{}, fmt.Errorf("read HEAD: %w", err)
	}
	line := strings.TrimSpace(string(content))
	if branch, ok := strings.CutPrefix(line, headRefPrefix); ok {
		return HeadState{Branch: branch}, nil
	}
	hash, err := objects.ParseKey(line)
	if err != nil {
		return HeadState{}, fmt.Errorf("read HEAD: %w", err)
	}
	return HeadState{Hash: &hash}, nil
}

// WriteHEADBranch points R/HEAD at branch by name (symbolic ref).
func (s *Store) WriteHEADBranch(branch string) error {
	return s.writeHEAD(headRefPrefix + branch + "\n")
}

// WriteHEADHash points R/HEAD directly at hash (detached).
func (s *Store) WriteHEADHash(hash objects.ObjectKey) error {
	return s.writeHEAD(hash.String() + "\n")
}

func (s *Store) writeHEAD(content string) error {
	path := filepath.Join(s.Root, "HEAD")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write HEAD: %w", err)
	}
	return nil
}
