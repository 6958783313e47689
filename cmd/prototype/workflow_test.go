package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T, dir string) {
	t.Helper()
	chdir(t, dir)
	cmd := newInitCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
}

func TestHashObjectAndShowObjectRoundTrip(t *testing.T) {
	dir := t.TempDir()
	initRepo(t, dir)

	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	hashCmd := newHashObjectCommand()
	var hashOut bytes.Buffer
	hashCmd.SetOut(&hashOut)
	hashCmd.SetArgs([]string{"a.txt"})
	require.NoError(t, hashCmd.Execute())
	hash := trimTrailingNewline(hashOut.String())
	assert.Len(t, hash, 40)

	showCmd := newShowObjectCommand()
	var showOut bytes.Buffer
	showCmd.SetOut(&showOut)
	showCmd.SetArgs([]string{hash})
	require.NoError(t, showCmd.Execute())
	assert.Contains(t, showOut.String(), "type: blob")
	assert.Contains(t, showOut.String(), "size: 5")
}

func TestCommitStatusLogBranchWorkflow(t *testing.T) {
	dir := t.TempDir()
	initRepo(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha"), 0o644))

	statusCmd := newStatusCommand()
	var statusOut bytes.Buffer
	statusCmd.SetOut(&statusOut)
	statusCmd.SetArgs([]string{})
	require.NoError(t, statusCmd.Execute())
	assert.Contains(t, statusOut.String(), "UNTRACKED")
	assert.Contains(t, statusOut.String(), "a.txt")

	commitCmd := newCommitCommand()
	var commitOut bytes.Buffer
	commitCmd.SetOut(&commitOut)
	commitCmd.SetArgs([]string{"-m", "first commit"})
	require.NoError(t, commitCmd.Execute())
	assert.Contains(t, commitOut.String(), "master")
	assert.Contains(t, commitOut.String(), "first commit")

	logCmd := newLogCommand()
	var logOut bytes.Buffer
	logCmd.SetOut(&logOut)
	logCmd.SetArgs([]string{})
	require.NoError(t, logCmd.Execute())
	assert.Contains(t, logOut.String(), "first commit")

	branchCmd := newBranchCommand()
	var branchOut bytes.Buffer
	branchCmd.SetOut(&branchOut)
	branchCmd.SetArgs([]string{})
	require.NoError(t, branchCmd.Execute())
	assert.Contains(t, branchOut.String(), "master")
}

func TestExtractObjectWritesFiles(t *testing.T) {
	dir := t.TempDir()
	initRepo(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha"), 0o644))

	commitCmd := newCommitCommand()
	var commitOut bytes.Buffer
	commitCmd.SetOut(&commitOut)
	commitCmd.SetArgs([]string{"-m", "snapshot"})
	require.NoError(t, commitCmd.Execute())

	dest := filepath.Join(t.TempDir(), "out")
	extractCmd := newExtractObjectCommand()
	var extractOut bytes.Buffer
	extractCmd.SetOut(&extractOut)
	extractCmd.SetArgs([]string{"master", dest})
	require.NoError(t, extractCmd.Execute())

	got, err := os.ReadFile(filepath.Join(dest, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, []byte("alpha"), got)
}

func TestCacheStatusReportsCachedAfterHash(t *testing.T) {
	dir := t.TempDir()
	initRepo(t, dir)
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha"), 0o644))

	hashCmd := newHashObjectCommand()
	var hashOut bytes.Buffer
	hashCmd.SetOut(&hashOut)
	hashCmd.SetArgs([]string{"a.txt"})
	require.NoError(t, hashCmd.Execute())

	cacheCmd := newCacheStatusCommand()
	var cacheOut bytes.Buffer
	cacheCmd.SetOut(&cacheOut)
	cacheCmd.SetArgs([]string{"a.txt"})
	require.NoError(t, cacheCmd.Execute())
	assert.Contains(t, cacheOut.String(), "cached hash=")
}

func trimTrailingNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
