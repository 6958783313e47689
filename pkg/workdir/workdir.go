// Package workdir ties a working directory on disk to its object store and
// persisted commit state: the current branch and parent commits
// (spec.md §4.2, §4.8's commit operation, and original_source's work_dir.rs).
package workdir

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fenilsonani/prototype/internal/core/objects"
	"github.com/fenilsonani/prototype/internal/core/objectstore"
	"github.com/fenilsonani/prototype/internal/transfer"
)

// RepoDirName is the hidden directory holding the object store and work dir
// state, sibling to the working tree's own files (spec.md §6's ".prototype").
const RepoDirName = ".prototype"

// StateFileName is the work dir state file under RepoDirName.
const StateFileName = "work_dir_state"

// DefaultBranchName is the branch a freshly initialized work dir starts on.
const DefaultBranchName = "master"

// State is the persisted work dir state: the commit(s) the working tree
// descends from, and the branch whose ref gets updated on commit.
type State struct {
	Parents []objects.ObjectKey `json:"parents"`
	Branch  *string             `json:"branch"`
}

func defaultState() State {
	branch := DefaultBranchName
	return State{Branch: &branch}
}

// WorkDir pairs a working tree path with its object store and commit state.
type WorkDir struct {
	Transfer  *transfer.FsTransfer
	Path      string
	statePath string
	state     State
}

func statePath(path string) string {
	return filepath.Join(path, RepoDirName, StateFileName)
}

// Init creates a fresh object store and default work dir state under path.
func Init(path string) (*WorkDir, error) {
	storeRoot := filepath.Join(path, RepoDirName)
	store, err := objectstore.Init(storeRoot)
	if err != nil {
		return nil, fmt.Errorf("init work dir %s: %w", path, err)
	}
	wd := &WorkDir{
		Transfer:  transfer.New(store),
		Path:      path,
		statePath: statePath(path),
		state:     defaultState(),
	}
	if err := wd.flush(); err != nil {
		return nil, fmt.Errorf("init work dir %s: %w", path, err)
	}
	return wd, nil
}

// Open loads an existing work dir's state, defaulting to a fresh State if
// no state file exists yet.
func Open(path string) (*WorkDir, error) {
	storeRoot := filepath.Join(path, RepoDirName)
	wd := &WorkDir{
		Transfer:  transfer.New(objectstore.Open(storeRoot)),
		Path:      path,
		statePath: statePath(path),
	}
	if err := wd.load(); err != nil {
		return nil, fmt.Errorf("open work dir %s: %w", path, err)
	}
	return wd, nil
}

func (w *WorkDir) load() error {
	data, err := os.ReadFile(w.statePath)
	if err != nil {
		if os.IsNotExist(err) {
			w.state = defaultState()
			return nil
		}
		return fmt.Errorf("load state: %w", err)
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	w.state = s
	return nil
}

func (w *WorkDir) flush() error {
	data, err := json.Marshal(w.state)
	if err != nil {
		return fmt.Errorf("flush state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(w.statePath), 0o755); err != nil {
		return fmt.Errorf("flush state: %w", err)
	}
	if err := os.WriteFile(w.statePath, data, 0o644); err != nil {
		return fmt.Errorf("flush state: %w", err)
	}
	return nil
}

// Branch returns the current branch name, or ok=false if detached.
func (w *WorkDir) Branch() (name string, ok bool) {
	if w.state.Branch == nil {
		return "", false
	}
	return *w.state.Branch, true
}

// Parents returns the commit(s) the working tree descends from.
func (w *WorkDir) Parents() []objects.ObjectKey {
	return w.state.Parents
}

// Commit hashes the working tree, stores a Commit object over it with the
// current parents, updates the current branch's ref (if any), and persists
// the new parent set (spec.md §4.8's commit).
func (w *WorkDir) Commit(message string) (branch string, hash objects.ObjectKey, err error) {
	hash, err = w.Transfer.Commit(w.Path, w.state.Parents, []byte(message))
	if err != nil {
		return "", objects.ObjectKey{}, fmt.Errorf("commit: %w", err)
	}

	w.state.Parents = []objects.ObjectKey{hash}
	if name, ok := w.Branch(); ok {
		if err := w.Transfer.Store.UpdateRef(name, hash); err != nil {
			return "", objects.ObjectKey{}, fmt.Errorf("commit: %w", err)
		}
	}
	if err := w.flush(); err != nil {
		return "", objects.ObjectKey{}, fmt.Errorf("commit: %w", err)
	}

	name, _ := w.Branch()
	return name, hash, nil
}

// Status compares the working tree against the first parent commit (or,
// with no parent yet, against nothing: every included path is Untracked).
func (w *WorkDir) Status() (*transfer.HashPlan, error) {
	var compareAgainst *objects.ObjectKey
	if len(w.state.Parents) > 0 {
		compareAgainst = &w.state.Parents[0]
	}
	plan, err := w.Transfer.Status(w.Path, compareAgainst)
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	return plan, nil
}
