package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/g5kbench/cassbench/internal/bootstrap"
	"github.com/g5kbench/cassbench/internal/cassandra"
	"github.com/g5kbench/cassbench/internal/containers"
	"github.com/g5kbench/cassbench/internal/inventory"
	"github.com/g5kbench/cassbench/internal/mocks"
	"github.com/g5kbench/cassbench/internal/nosqlbench"
	"github.com/g5kbench/cassbench/internal/provider"
	"github.com/g5kbench/cassbench/internal/provider/static"
	"github.com/g5kbench/cassbench/internal/remote"
)

var request = provider.Request{NodeCount: 2, SeedCount: 1, ClientCount: 1}

func newDriver(t *testing.T, p provider.Provider, exec *mocks.MockExecutor) *Driver {
	t.Helper()
	dir := t.TempDir()
	templates := filepath.Join(dir, "nb")
	require.NoError(t, os.MkdirAll(filepath.Join(templates, "conf"), 0o755))
	d, err := New(p, exec, Options{
		StatePath: filepath.Join(dir, "state.toml"),
		Cleanup:   true,
		CassandraOptions: cassandra.Options{
			Name:         "cassandra",
			Image:        "cassandra:4.1",
			LocalTmpPath: filepath.Join(dir, cassandra.DefaultLocalTmpPath),
		},
		NoSQLBenchOptions: nosqlbench.Options{
			Name:              "nb",
			Image:             "nosqlbench/nosqlbench:5",
			LocalTemplatePath: templates,
		},
	})
	require.NoError(t, err)
	return d
}

func staticProvider(t *testing.T) provider.Provider {
	t.Helper()
	p, err := static.New(&static.Config{Hosts: []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"}})
	require.NoError(t, err)
	return p
}

func noSleep(c *cassandra.Cassandra) {
	c.Sequencer().Sleep = func(context.Context, time.Duration) error { return nil }
}

func TestNewValidation(t *testing.T) {
	exec := mocks.NewMockExecutor(t)
	_, err := New(nil, exec, Options{StatePath: "x"})
	assert.Error(t, err)
	_, err = New(staticProvider(t), nil, Options{StatePath: "x"})
	assert.Error(t, err)
	_, err = New(staticProvider(t), exec, Options{})
	assert.Error(t, err)
}

func TestGetResources(t *testing.T) {
	exec := mocks.NewMockExecutor(t)
	d := newDriver(t, staticProvider(t), exec)
	d.Docker = remote.DockerConfig{RegistryMirror: remote.DefaultRegistryMirror}

	var mu sync.Mutex
	var prepared []string
	exec.EXPECT().Shell(mock.Anything, mock.Anything, mock.Anything).
		Run(func(_ context.Context, h *inventory.Host, _ string) {
			mu.Lock()
			defer mu.Unlock()
			prepared = append(prepared, h.Address)
		}).
		Return("", nil)

	require.NoError(t, d.GetResources(context.Background(), request))
	assert.ElementsMatch(t, []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"}, prepared)

	s, err := LoadState(d.StatePath)
	require.NoError(t, err)
	assert.Equal(t, static.Name, s.Reservation.Provider)
	assert.Equal(t, []string{"10.0.0.1"}, s.Reservation.Seeds)
	assert.Equal(t, []string{"10.0.0.2"}, s.Reservation.NotSeeds)
	assert.Equal(t, []string{"10.0.0.3"}, s.Reservation.Clients)

	roles, err := d.Roles()
	require.NoError(t, err)
	assert.Len(t, roles.Get(inventory.RoleCassandra), 2)
}

func TestGetResourcesInvalidRequest(t *testing.T) {
	p := mocks.NewMockProvider(t)
	d := newDriver(t, p, mocks.NewMockExecutor(t))
	assert.Error(t, d.GetResources(context.Background(), provider.Request{NodeCount: 1}))
	assert.NoFileExists(t, d.StatePath)
}

func TestGetResourcesReserveFails(t *testing.T) {
	p := mocks.NewMockProvider(t)
	p.EXPECT().Reserve(mock.Anything, request).Return(nil, errors.New("no nodes available"))
	d := newDriver(t, p, mocks.NewMockExecutor(t))

	err := d.GetResources(context.Background(), request)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no nodes available")
	assert.NoFileExists(t, d.StatePath)
}

func TestNoReservation(t *testing.T) {
	d := newDriver(t, mocks.NewMockProvider(t), mocks.NewMockExecutor(t))
	_, err := d.Roles()
	assert.ErrorIs(t, err, provider.ErrNoReservation)
	assert.ErrorIs(t, d.DeployNB(context.Background(), "", ""), provider.ErrNoReservation)
	assert.ErrorIs(t, d.Destroy(context.Background()), provider.ErrNoReservation)
}

func TestDeployCassandra(t *testing.T) {
	exec := mocks.NewMockExecutor(t)
	d := newDriver(t, staticProvider(t), exec)
	require.NoError(t, d.GetResources(context.Background(), request))

	c, err := d.Cassandra("", "")
	require.NoError(t, err)
	noSleep(c)
	assert.Equal(t, 1, c.SeedCount())
	assert.Equal(t, 1, c.NotSeedCount())

	template := filepath.Join(t.TempDir(), "cassandra.yaml")
	require.NoError(t, os.WriteFile(template, []byte(`seed_provider:
  - parameters:
      - seeds: "127.0.0.1:7000"
listen_address: localhost
rpc_address: localhost
`), 0o644))

	exec.EXPECT().MakeDir(mock.Anything, mock.Anything, cassandra.DefaultRootPath).Return(nil).Times(2)
	exec.EXPECT().Upload(mock.Anything, mock.Anything, mock.Anything, cassandra.DefaultRootPath).Return(nil).Times(2)
	exec.EXPECT().Shell(mock.Anything, mock.Anything, "swapoff --all").Return("", nil).Times(2)
	exec.EXPECT().Sysctl(mock.Anything, mock.Anything, "vm.max_map_count", cassandra.MaxMapCount).Return(nil).Times(2)
	exec.EXPECT().EnsureContainer(mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(2)
	exec.EXPECT().StartContainer(mock.Anything, mock.Anything, "cassandra").Return(nil).Times(2)
	exec.EXPECT().Exec(mock.Anything, c.Hosts()[0], "cassandra", "nodetool", "status").Return("UN 10.0.0.1\nUN 10.0.0.2\n", nil)

	require.NoError(t, d.DeployCassandra(context.Background(), "", "", template, true))
	for _, state := range c.States() {
		assert.Equal(t, bootstrap.StateStarted, state)
	}
	assert.NoDirExists(t, c.LocalTmpPath)

	s, err := LoadState(d.StatePath)
	require.NoError(t, err)
	require.NotNil(t, s.Cassandra)
	assert.Equal(t, "cassandra:4.1", s.Cassandra.Image)
}

func TestNoSQLBenchLifecycle(t *testing.T) {
	exec := mocks.NewMockExecutor(t)
	d := newDriver(t, staticProvider(t), exec)
	require.NoError(t, d.GetResources(context.Background(), request))
	client := &inventory.Host{}

	exec.EXPECT().MakeDir(mock.Anything, mock.Anything, mock.Anything).Return(nil)
	exec.EXPECT().Upload(mock.Anything, mock.Anything, mock.Anything, nosqlbench.DefaultRootPath).Return(nil)
	exec.EXPECT().PullImage(mock.Anything, mock.Anything, "nosqlbench/nosqlbench:5.17").
		Run(func(_ context.Context, h *inventory.Host, _ string) { client = h }).
		Return(nil)
	require.NoError(t, d.DeployNB(context.Background(), "", "nosqlbench/nosqlbench:5.17"))
	assert.Equal(t, "10.0.0.3", client.Address)

	// a fresh driver picks the deployment up from the state file
	again, err := New(d.provider, exec, d.Options)
	require.NoError(t, err)
	exec.EXPECT().RunContainer(mock.Anything, mock.Anything, mock.MatchedBy(func(c *containers.Container) bool {
		return c.Image == "nosqlbench/nosqlbench:5.17" && c.Cmd[0] == "run"
	})).Return(&containers.RunResult{}, nil)
	require.NoError(t, again.RunNB(context.Background(), nosqlbench.NewRunCommand().Option("driver", "cql")))

	dest := filepath.Join(t.TempDir(), "results")
	exec.EXPECT().Download(mock.Anything, mock.Anything, "/root/nosqlbench/data", filepath.Join(dest, "10.0.0.3")).Return(nil)
	got, err := again.SyncResults(context.Background(), dest)
	require.NoError(t, err)
	assert.Equal(t, dest, got)
}

func TestDestroy(t *testing.T) {
	p := mocks.NewMockProvider(t)
	exec := mocks.NewMockExecutor(t)
	d := newDriver(t, p, exec)
	partition, err := inventory.NewPartition([]string{"10.0.0.1", "10.0.0.2"}, 1, 0, 1)
	require.NoError(t, err)
	r := provider.NewReservation("g5k", partition)
	r.Site, r.JobID = "nancy", 42
	require.NoError(t, SaveState(d.StatePath, &State{Reservation: r}))

	p.EXPECT().Destroy(mock.Anything, mock.MatchedBy(func(got *provider.Reservation) bool {
		return got.JobID == 42 && got.Site == "nancy"
	})).Return(nil)

	require.NoError(t, d.Destroy(context.Background()))
	assert.NoFileExists(t, d.StatePath)
}

func TestDestroyKeepsStateOnFailure(t *testing.T) {
	p := mocks.NewMockProvider(t)
	d := newDriver(t, p, mocks.NewMockExecutor(t))
	partition, err := inventory.NewPartition([]string{"10.0.0.1"}, 1, 0, 0)
	require.NoError(t, err)
	require.NoError(t, SaveState(d.StatePath, &State{Reservation: provider.NewReservation("g5k", partition)}))
	p.EXPECT().Destroy(mock.Anything, mock.Anything).Return(errors.New("api down"))

	assert.Error(t, d.Destroy(context.Background()))
	assert.FileExists(t, d.StatePath)
}
