package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	r, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nb", "conf"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nb", "conf", "workload.yaml"), []byte("bindings: {}\n"), 0o644))
	w, err := r.Worktree()
	require.NoError(t, err)
	_, err = w.Add("nb")
	require.NoError(t, err)
	_, err = w.Commit("templates", &git.CommitOptions{
		Author: &object.Signature{Name: "bench", Email: "bench@example.org", When: time.Now()},
	})
	require.NoError(t, err)
	return dir
}

func TestSyncClonesThenPulls(t *testing.T) {
	upstream := initRepo(t)
	local := filepath.Join(t.TempDir(), "repo")
	g, err := NewGitSource(&Config{URL: upstream, LocalRepository: local, Subdir: "nb"})
	require.NoError(t, err)

	require.NoError(t, g.Sync(context.Background()))
	assert.Equal(t, filepath.Join(local, "nb"), g.Path())
	assert.FileExists(t, filepath.Join(g.Path(), "conf", "workload.yaml"))

	// second sync pulls an existing clone
	require.NoError(t, g.Sync(context.Background()))

	require.NoError(t, g.Clean())
	assert.NoDirExists(t, local)
}

func TestSyncMissingSubdir(t *testing.T) {
	upstream := initRepo(t)
	g, err := NewGitSource(&Config{URL: upstream, LocalRepository: filepath.Join(t.TempDir(), "repo"), Subdir: "missing"})
	require.NoError(t, err)
	assert.Error(t, g.Sync(context.Background()))
}

func TestNewGitSourceValidation(t *testing.T) {
	_, err := NewGitSource(nil)
	assert.Error(t, err)
	_, err = NewGitSource(&Config{URL: "https://example.org/x.git"})
	assert.Error(t, err)
	_, err = NewGitSource(&Config{URL: "https://example.org/x.git", LocalRepository: "x", PrivateKey: "/nonexistent/key"})
	assert.Error(t, err)

	g, err := NewGitSource(&Config{URL: "https://example.org/x.git", LocalRepository: "x", Username: "u", Password: "p"})
	require.NoError(t, err)
	assert.NotNil(t, g.auth)
}
