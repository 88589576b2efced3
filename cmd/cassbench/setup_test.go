package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
workdir = "/tmp/cassbench"
provider = "static"

[request]
site = "nancy"
node_count = 2
seed_count = 1

[static]
hosts = ["10.0.0.1", "10.0.0.2"]
`

func TestLoadConfigsPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cassbench.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	t.Setenv("CASSBENCH_REQUEST__SITE", "lyon")
	t.Setenv("CASSBENCH_REQUEST__NODE_COUNT", "3")

	k, err := LoadConfigs(context.Background(), path, map[string]any{"workdir": "/tmp/other"})
	require.NoError(t, err)
	assert.Equal(t, "lyon", k.String("request.site"))
	assert.Equal(t, 3, k.Int("request.node_count"))
	assert.Equal(t, 1, k.Int("request.seed_count"))
	assert.Equal(t, "/tmp/other", k.String("workdir"))
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, k.Strings("static.hosts"))
}

func TestLoadConfigsMissingFile(t *testing.T) {
	_, err := LoadConfigs(context.Background(), filepath.Join(t.TempDir(), "missing.toml"), nil)
	assert.Error(t, err)
}

func TestSetupStatic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cassbench.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	workdir := filepath.Join(t.TempDir(), "work")

	b, err := setup(context.Background(), path, map[string]any{"workdir": workdir})
	require.NoError(t, err)
	defer b.Close()
	assert.DirExists(t, workdir)
	assert.Equal(t, filepath.Join(workdir, "state.toml"), b.driver.StatePath)
}
