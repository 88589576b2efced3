// Package cassandra deploys and starts a Cassandra cluster in containers.
package cassandra

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/shlex"

	"github.com/g5kbench/cassbench/internal/actions"
	"github.com/g5kbench/cassbench/internal/attributes"
	"github.com/g5kbench/cassbench/internal/bootstrap"
	"github.com/g5kbench/cassbench/internal/confgen"
	"github.com/g5kbench/cassbench/internal/containers"
	"github.com/g5kbench/cassbench/internal/inventory"
	"github.com/g5kbench/cassbench/internal/plan"
	"github.com/g5kbench/cassbench/internal/remote"
	"github.com/g5kbench/cassbench/internal/tree"
)

const (
	StoragePort = 7000
	ConfigFile  = "cassandra.yaml"

	DefaultRootPath          = "/root/cassandra"
	DefaultConfDir           = "conf"
	DefaultContainerConfPath = "/etc/cassandra"
	DefaultLocalTmpPath      = "__tmp_cassandra__"
	DefaultDataPath          = "/var/lib/cassandra/data"
	MaxMapCount              = "1048575"
)

var ErrNoHosts = errors.New("no cassandra hosts")

type Options struct {
	Name              string
	Image             string
	RootPath          string
	ConfDir           string
	ContainerConfPath string
	LocalTmpPath      string
	// SpawnDelay is waited after each start. Nil means DefaultSpawnDelay,
	// zero disables the wait.
	SpawnDelay        *time.Duration
	Parallelism       int
	// Recreate removes any existing container before creating it again, so
	// a new image or mount set takes effect.
	Recreate          bool
	Overrides         *attributes.AttributeVault
}

func (o *Options) applyDefaults() {
	if o.RootPath == "" {
		o.RootPath = DefaultRootPath
	}
	if o.ConfDir == "" {
		o.ConfDir = DefaultConfDir
	}
	if o.ContainerConfPath == "" {
		o.ContainerConfPath = DefaultContainerConfPath
	}
	if o.LocalTmpPath == "" {
		o.LocalTmpPath = DefaultLocalTmpPath
	}
}

type Cassandra struct {
	Options
	exec      remote.Executor
	sequencer *bootstrap.Sequencer

	hosts    []*inventory.Host
	seeds    []*inventory.Host
	notSeeds []*inventory.Host
}

func New(exec remote.Executor, opts Options) (*Cassandra, error) {
	if opts.Name == "" {
		return nil, errors.New("cassandra needs a container name")
	}
	if opts.Image == "" {
		return nil, errors.New("cassandra needs a docker image")
	}
	opts.applyDefaults()
	delay := bootstrap.DefaultSpawnDelay
	if opts.SpawnDelay != nil {
		delay = *opts.SpawnDelay
	}
	c := &Cassandra{Options: opts, exec: exec}
	c.sequencer = bootstrap.NewSequencer(bootstrap.StarterFunc(c.startContainer), delay)
	return c, nil
}

// Sequencer exposes the start sequencer, mostly so callers can swap its sleep.
func (c *Cassandra) Sequencer() *bootstrap.Sequencer {
	return c.sequencer
}

func (c *Cassandra) ConfPath() string {
	return c.RootPath + "/" + c.ConfDir
}

func (c *Cassandra) HostCount() int    { return len(c.hosts) }
func (c *Cassandra) SeedCount() int    { return len(c.seeds) }
func (c *Cassandra) NotSeedCount() int { return len(c.notSeeds) }

func (c *Cassandra) Hosts() []*inventory.Host {
	return c.hosts
}

// SetHosts claims hosts and creates their local staging directories.
func (c *Cassandra) SetHosts(hosts []*inventory.Host) error {
	for _, h := range hosts {
		if !h.HasRole(inventory.RoleCassandra) {
			return fmt.Errorf("host %v does not hold the %v role", h.Address, inventory.RoleCassandra)
		}
	}
	for _, h := range hosts {
		h.LocalRootPath = filepath.Join(c.LocalTmpPath, h.Address)
		h.LocalConfPath = filepath.Join(h.LocalRootPath, c.ConfDir)
		if err := os.MkdirAll(h.LocalConfPath, 0o755); err != nil {
			return fmt.Errorf("error creating staging directory for %v: %w", h.Address, err)
		}
	}
	c.hosts = hosts
	return nil
}

func (c *Cassandra) SetSeeds(seeds []*inventory.Host) {
	c.seeds = seeds
}

func (c *Cassandra) SetNotSeeds(notSeeds []*inventory.Host) {
	c.notSeeds = notSeeds
}

// UpdateSpec returns the cassandra.yaml changes for host: seed list and
// addresses, then any configured overrides.
func (c *Cassandra) UpdateSpec(h *inventory.Host) tree.Spec {
	seeds := inventory.JoinAddresses(c.seeds, StoragePort)
	spec := tree.Spec{
		tree.Within(tree.Key("seed_provider"),
			tree.Within(tree.Index(0),
				tree.Within(tree.Key("parameters"),
					tree.Within(tree.Index(0),
						tree.Set(tree.Key("seeds"), seeds))))),
		tree.Set(tree.Key("listen_address"), h.Address),
		tree.Set(tree.Key("rpc_address"), h.Address),
	}
	overrides := c.Overrides.Lookup(attributes.AttributesFilter{Hostname: h.Address, Roles: h.Roles})
	if len(overrides) > 0 {
		spec = append(spec, tree.FromMap(overrides)...)
	}
	return spec
}

// CreateConfig renders cassandra.yaml for every host into its staging
// directory.
func (c *Cassandra) CreateConfig(templatePath string) error {
	if len(c.hosts) == 0 {
		return ErrNoHosts
	}
	if len(c.seeds) == 0 {
		return errors.New("no seeds set")
	}
	for _, h := range c.hosts {
		if h.LocalConfPath == "" {
			return fmt.Errorf("host %v has no staging directory", h.Address)
		}
		out := filepath.Join(h.LocalConfPath, ConfigFile)
		if err := confgen.Build(templatePath, out, c.UpdateSpec(h)); err != nil {
			return fmt.Errorf("error creating config for %v: %w", h.Address, err)
		}
		log.Debug("config created", "host", h.Address, "path", out)
	}
	return nil
}

func (c *Cassandra) container() *containers.Container {
	return &containers.Container{
		Name:        c.Name,
		Image:       c.Image,
		HostNetwork: true,
		Mounts: []containers.Mount{{
			Source: c.ConfPath() + "/" + ConfigFile,
			Target: c.ContainerConfPath + "/" + ConfigFile,
		}},
	}
}

// DeployPlan stages the rendered files, tunes the kernel and creates the
// container without starting it. With Recreate the old container goes first.
func (c *Cassandra) DeployPlan() (*plan.Plan, error) {
	p := plan.NewPlan("cassandra")
	if c.Recreate {
		if err := p.Add(actions.RemoveContainer(c.Name)); err != nil {
			return nil, err
		}
	}
	err := p.Append(
		actions.MakeDir(c.RootPath),
		actions.Upload(actions.PlaceholderLocalRootPath, c.RootPath),
		actions.Shell("swapoff --all"),
		actions.Sysctl("vm.max_map_count", MaxMapCount),
		actions.EnsureContainer(c.container()),
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Cassandra) Deploy(ctx context.Context) error {
	if len(c.hosts) == 0 {
		return ErrNoHosts
	}
	p, err := c.DeployPlan()
	if err != nil {
		return err
	}
	if err := remote.Batch(ctx, c.exec, c.hosts, c.Parallelism, p); err != nil {
		return err
	}
	log.Info("cassandra has been deployed, ready to start")
	return nil
}

func (c *Cassandra) startContainer(ctx context.Context, h *inventory.Host) error {
	return remote.Perform(ctx, c.exec, h, actions.StartContainer(c.Name))
}

// StartHost starts Cassandra on one host and waits the spawn delay.
func (c *Cassandra) StartHost(ctx context.Context, h *inventory.Host) error {
	return c.sequencer.StartHost(ctx, h)
}

// Start brings up seeds then the remaining nodes, one at a time.
func (c *Cassandra) Start(ctx context.Context) error {
	if len(c.seeds) == 0 {
		return errors.New("no seeds set")
	}
	if err := c.sequencer.StartCluster(ctx, c.seeds, c.notSeeds); err != nil {
		return err
	}
	log.Info("cassandra is running")
	return nil
}

func (c *Cassandra) States() map[string]bootstrap.State {
	return c.sequencer.States()
}

// Cleanup removes the local staging directory.
func (c *Cassandra) Cleanup() error {
	if err := os.RemoveAll(c.LocalTmpPath); err != nil {
		return fmt.Errorf("error removing %v: %w", c.LocalTmpPath, err)
	}
	return nil
}

// DeployAndStart deploys and starts the cluster. Staging files are only
// removed when both steps succeed.
func (c *Cassandra) DeployAndStart(ctx context.Context, cleanup bool) error {
	if err := c.Deploy(ctx); err != nil {
		return err
	}
	if err := c.Start(ctx); err != nil {
		return err
	}
	if cleanup {
		return c.Cleanup()
	}
	return nil
}

// Nodetool runs nodetool inside the container of the first host.
func (c *Cassandra) Nodetool(ctx context.Context, command string) (string, error) {
	if command == "" {
		command = "status"
	}
	args, err := shlex.Split(command)
	if err != nil {
		return "", fmt.Errorf("error parsing nodetool command %q: %w", command, err)
	}
	return c.NodetoolArgs(ctx, args...)
}

// NodetoolArgs is Nodetool with the arguments already split. No arguments
// means status.
func (c *Cassandra) NodetoolArgs(ctx context.Context, args ...string) (string, error) {
	if len(args) == 0 {
		args = []string{"status"}
	}
	return c.execFirst(ctx, append([]string{"nodetool"}, args...)...)
}

// Du reports the disk usage of path inside the container of the first host.
func (c *Cassandra) Du(ctx context.Context, path string) (string, error) {
	if path == "" {
		path = DefaultDataPath
	}
	return c.execFirst(ctx, "du", "-sh", path)
}

func (c *Cassandra) execFirst(ctx context.Context, cmd ...string) (string, error) {
	if len(c.hosts) == 0 {
		return "", ErrNoHosts
	}
	return c.exec.Exec(ctx, c.hosts[0], c.Name, cmd...)
}

// Status inspects the container on every host.
func (c *Cassandra) Status(ctx context.Context) (map[string]*containers.ContainerState, error) {
	result := make(map[string]*containers.ContainerState, len(c.hosts))
	for _, h := range c.hosts {
		state, err := c.exec.InspectContainer(ctx, h, c.Name)
		if err != nil && !errors.Is(err, containers.ErrContainerNotFound) {
			return nil, err
		}
		result[h.Address] = state
	}
	return result, nil
}
