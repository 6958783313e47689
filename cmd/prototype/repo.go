package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fenilsonani/prototype/pkg/workdir"
)

// findRepository walks up from the current directory looking for
// workdir.RepoDirName, the same way git walks up looking for .git.
func findRepository() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		repoDir := filepath.Join(dir, workdir.RepoDirName)
		if info, err := os.Stat(repoDir); err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("not a prototype repository (or any parent up to /)")
}

func openWorkDir() (*workdir.WorkDir, error) {
	path, err := findRepository()
	if err != nil {
		return nil, err
	}
	return workdir.Open(path)
}
