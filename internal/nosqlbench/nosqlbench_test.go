package nosqlbench

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/g5kbench/cassbench/internal/containers"
	"github.com/g5kbench/cassbench/internal/inventory"
	"github.com/g5kbench/cassbench/internal/mocks"
)

func newBench(t *testing.T, exec *mocks.MockExecutor) *NoSQLBench {
	t.Helper()
	templates := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(templates, "conf"), 0o755))
	nb, err := New(exec, Options{Name: "nb", Image: "nosqlbench/nosqlbench:5", LocalTemplatePath: templates})
	require.NoError(t, err)
	nb.SetHosts([]*inventory.Host{inventory.NewHost("10.0.0.8", inventory.RoleClients)})
	return nb
}

func TestDeploy(t *testing.T) {
	exec := mocks.NewMockExecutor(t)
	nb := newBench(t, exec)
	h := nb.Hosts()[0]

	exec.EXPECT().MakeDir(mock.Anything, h, "/root/nosqlbench").Return(nil)
	exec.EXPECT().MakeDir(mock.Anything, h, "/root/nosqlbench/conf").Return(nil)
	exec.EXPECT().MakeDir(mock.Anything, h, "/root/nosqlbench/data").Return(nil)
	exec.EXPECT().Upload(mock.Anything, h, nb.LocalTemplatePath, "/root/nosqlbench").Return(nil)
	exec.EXPECT().PullImage(mock.Anything, h, "nosqlbench/nosqlbench:5").Return(nil)

	require.NoError(t, nb.Deploy(context.Background()))
}

func TestDeployMissingTemplates(t *testing.T) {
	exec := mocks.NewMockExecutor(t)
	nb := newBench(t, exec)
	nb.LocalTemplatePath = filepath.Join(t.TempDir(), "missing")
	assert.Error(t, nb.Deploy(context.Background()))
}

func TestRun(t *testing.T) {
	exec := mocks.NewMockExecutor(t)
	nb := newBench(t, exec)
	cmd := NewRunCommand().Option("driver", "cql")

	exec.EXPECT().RunContainer(mock.Anything, nb.Hosts()[0], mock.MatchedBy(func(c *containers.Container) bool {
		return c.Name == "nb" && c.HostNetwork &&
			strings.Join(c.Cmd, " ") == "run driver=cql" &&
			c.Mounts[0] == containers.Mount{Source: "/root/nosqlbench/conf", Target: "/etc/nosqlbench"} &&
			c.Mounts[1] == containers.Mount{Source: "/root/nosqlbench/data", Target: "/var/lib/nosqlbench"}
	})).Return(&containers.RunResult{}, nil)

	require.NoError(t, nb.Run(context.Background(), cmd, nil))
}

func TestRunFailure(t *testing.T) {
	exec := mocks.NewMockExecutor(t)
	nb := newBench(t, exec)
	exec.EXPECT().RunContainer(mock.Anything, mock.Anything, mock.Anything).
		Return(&containers.RunResult{ExitCode: 2}, errors.New("container nb exited with 2"))

	err := nb.Run(context.Background(), NewRunCommand(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exited with 2")
}

func TestSyncResults(t *testing.T) {
	exec := mocks.NewMockExecutor(t)
	nb := newBench(t, exec)
	dest := filepath.Join(t.TempDir(), "results")
	exec.EXPECT().Download(mock.Anything, nb.Hosts()[0], "/root/nosqlbench/data", filepath.Join(dest, "10.0.0.8")).Return(nil)

	got, err := nb.SyncResults(context.Background(), dest, nil)
	require.NoError(t, err)
	assert.Equal(t, dest, got)
	assert.DirExists(t, dest)
}

func TestDefaultResultsDir(t *testing.T) {
	now := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "./results_2024-03-01T14:30:00Z", DefaultResultsDir(now))
}

func TestNoHosts(t *testing.T) {
	nb, err := New(nil, Options{Name: "nb", Image: "img"})
	require.NoError(t, err)
	assert.ErrorIs(t, nb.Run(context.Background(), NewRunCommand(), nil), ErrNoHosts)
	_, err = nb.SyncResults(context.Background(), t.TempDir(), nil)
	assert.ErrorIs(t, err, ErrNoHosts)
}
