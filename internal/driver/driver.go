// Package driver ties reservation, Cassandra and NoSQLBench together into a
// benchmark run.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/g5kbench/cassbench/internal/cassandra"
	"github.com/g5kbench/cassbench/internal/inventory"
	"github.com/g5kbench/cassbench/internal/nosqlbench"
	"github.com/g5kbench/cassbench/internal/provider"
	"github.com/g5kbench/cassbench/internal/remote"
)

type Options struct {
	StatePath         string
	Parallelism       int
	Cleanup           bool
	Docker            remote.DockerConfig
	CassandraOptions  cassandra.Options
	NoSQLBenchOptions nosqlbench.Options
}

type Driver struct {
	Options
	provider provider.Provider
	exec     remote.Executor

	state     *State
	partition inventory.Partition

	cassandra *cassandra.Cassandra
	nb        *nosqlbench.NoSQLBench
}

func New(p provider.Provider, exec remote.Executor, opts Options) (*Driver, error) {
	if p == nil {
		return nil, errors.New("driver needs a provider")
	}
	if exec == nil {
		return nil, errors.New("driver needs an executor")
	}
	if opts.StatePath == "" {
		return nil, errors.New("driver needs a state path")
	}
	if opts.Parallelism > 0 {
		opts.CassandraOptions.Parallelism = opts.Parallelism
		opts.NoSQLBenchOptions.Parallelism = opts.Parallelism
	}
	return &Driver{Options: opts, provider: p, exec: exec}, nil
}

// GetResources reserves hosts, records them in the state file and prepares
// docker on every host.
func (d *Driver) GetResources(ctx context.Context, req provider.Request) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	r, err := d.provider.Reserve(ctx, req)
	if err != nil {
		return fmt.Errorf("error reserving hosts: %w", err)
	}
	if err := d.setReservation(r); err != nil {
		return err
	}
	if err := SaveState(d.StatePath, d.state); err != nil {
		return err
	}
	if err := d.PrepareHosts(ctx); err != nil {
		return err
	}
	for _, h := range d.partition.Roles().Get(inventory.RoleHosts) {
		log.Infof("Host %v is ready!", h.Address)
	}
	return nil
}

// PrepareHosts installs and configures docker on every reserved host.
func (d *Driver) PrepareHosts(ctx context.Context) error {
	roles, err := d.Roles()
	if err != nil {
		return err
	}
	p, err := remote.DockerPlan(d.Docker)
	if err != nil {
		return err
	}
	if p.Empty() {
		return nil
	}
	log.Info("Installing Docker on hosts...")
	return remote.Batch(ctx, d.exec, roles.Get(inventory.RoleHosts), d.Parallelism, p)
}

func (d *Driver) setReservation(r *provider.Reservation) error {
	partition, err := r.Partition()
	if err != nil {
		return fmt.Errorf("invalid reservation: %w", err)
	}
	d.partition = partition
	if d.state == nil {
		d.state = &State{}
	}
	d.state.Reservation = r
	return nil
}

// Load reads the state file left by an earlier GetResources.
func (d *Driver) Load() error {
	if d.state != nil {
		return nil
	}
	s, err := LoadState(d.StatePath)
	if err != nil {
		return err
	}
	d.state = s
	return d.setReservation(s.Reservation)
}

func (d *Driver) State() *State {
	return d.state
}

func (d *Driver) Roles() (inventory.Roles, error) {
	if err := d.Load(); err != nil {
		return nil, err
	}
	return d.partition.Roles(), nil
}

// Cassandra returns a cassandra deployment bound to the reserved nodes. name
// and image fall back to the configured ones when empty.
func (d *Driver) Cassandra(name, image string) (*cassandra.Cassandra, error) {
	if d.cassandra != nil && (name == "" || name == d.cassandra.Name) && (image == "" || image == d.cassandra.Image) {
		return d.cassandra, nil
	}
	if err := d.Load(); err != nil {
		return nil, err
	}
	opts := d.CassandraOptions
	if name != "" {
		opts.Name = name
	}
	if image != "" {
		opts.Image = image
	}
	c, err := cassandra.New(d.exec, opts)
	if err != nil {
		return nil, err
	}
	if err := c.SetHosts(d.partition.Cassandra()); err != nil {
		return nil, err
	}
	c.SetSeeds(d.partition.Seeds)
	if len(d.partition.NotSeeds) > 0 {
		c.SetNotSeeds(d.partition.NotSeeds)
	}
	d.cassandra = c
	return c, nil
}

// DeployCassandra renders one configuration per node from template, then
// deploys and starts the cluster seeds first.
func (d *Driver) DeployCassandra(ctx context.Context, name, image, template string, logStatus bool) error {
	c, err := d.Cassandra(name, image)
	if err != nil {
		return err
	}
	if err := c.CreateConfig(template); err != nil {
		return err
	}
	if err := c.DeployAndStart(ctx, d.Cleanup); err != nil {
		return err
	}
	d.state.Cassandra = &Deployment{Name: c.Name, Image: c.Image, DeployedAt: time.Now().UTC()}
	if err := SaveState(d.StatePath, d.state); err != nil {
		return err
	}
	if logStatus {
		status, err := c.Nodetool(ctx, "status")
		if err != nil {
			return fmt.Errorf("error fetching cluster status: %w", err)
		}
		log.Info(status)
	}
	return nil
}

func (d *Driver) NoSQLBench(name, image string) (*nosqlbench.NoSQLBench, error) {
	if d.nb != nil && (name == "" || name == d.nb.Name) && (image == "" || image == d.nb.Image) {
		return d.nb, nil
	}
	if err := d.Load(); err != nil {
		return nil, err
	}
	opts := d.NoSQLBenchOptions
	if dep := d.state.NoSQLBench; dep != nil {
		opts.Name, opts.Image = dep.Name, dep.Image
	}
	if name != "" {
		opts.Name = name
	}
	if image != "" {
		opts.Image = image
	}
	nb, err := nosqlbench.New(d.exec, opts)
	if err != nil {
		return nil, err
	}
	nb.SetHosts(d.partition.Clients)
	d.nb = nb
	return nb, nil
}

// DeployNB copies the workload templates to the clients and pulls the image.
func (d *Driver) DeployNB(ctx context.Context, name, image string) error {
	nb, err := d.NoSQLBench(name, image)
	if err != nil {
		return err
	}
	if err := nb.Deploy(ctx); err != nil {
		return err
	}
	d.state.NoSQLBench = &Deployment{Name: nb.Name, Image: nb.Image, DeployedAt: time.Now().UTC()}
	return SaveState(d.StatePath, d.state)
}

// RunNB runs cmd on every client with the last deployed NoSQLBench.
func (d *Driver) RunNB(ctx context.Context, cmd *nosqlbench.Command) error {
	nb, err := d.NoSQLBench("", "")
	if err != nil {
		return err
	}
	return nb.Run(ctx, cmd, nil)
}

func (d *Driver) SyncResults(ctx context.Context, dest string) (string, error) {
	nb, err := d.NoSQLBench("", "")
	if err != nil {
		return "", err
	}
	return nb.SyncResults(ctx, dest, nil)
}

// Destroy releases the reservation and forgets the state file.
func (d *Driver) Destroy(ctx context.Context) error {
	if err := d.Load(); err != nil {
		return err
	}
	if err := d.provider.Destroy(ctx, d.state.Reservation); err != nil {
		return fmt.Errorf("error releasing reservation: %w", err)
	}
	if err := os.Remove(d.StatePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	d.state = nil
	d.partition = inventory.Partition{}
	d.cassandra = nil
	d.nb = nil
	log.Info("reservation released")
	return nil
}
