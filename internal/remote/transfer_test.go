package remote

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackUnpackDir(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "conf"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "conf", "cassandra.yaml"), []byte("listen_address: 10.0.0.1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "top.txt"), []byte("hi"), 0o600))

	var buf bytes.Buffer
	require.NoError(t, PackDir(context.Background(), src, &buf))

	dest := filepath.Join(t.TempDir(), "out")
	require.NoError(t, UnpackDir(context.Background(), &buf, dest))

	data, err := os.ReadFile(filepath.Join(dest, "conf", "cassandra.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "listen_address: 10.0.0.1\n", string(data))
	data, err = os.ReadFile(filepath.Join(dest, "top.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))
	_, err = os.Stat(filepath.Join(dest, filepath.Base(src)))
	assert.True(t, os.IsNotExist(err), "directory contents are copied, not the directory")
}

func TestSecurePath(t *testing.T) {
	root := "/tmp/results"
	p, err := securePath(root, "data/summary.txt")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/results/data/summary.txt", p)

	p, err = securePath(root, "./")
	require.NoError(t, err)
	assert.Equal(t, root, p)

	_, err = securePath(root, "../etc/passwd")
	assert.Error(t, err)
	_, err = securePath(root, "data/../../escape")
	assert.Error(t, err)
}

func TestShellQuote(t *testing.T) {
	assert.Equal(t, "'/root/cassandra'", shellQuote("/root/cassandra"))
	assert.Equal(t, `'it'"'"'s'`, shellQuote("it's"))
}
