// Package nosqlbench deploys NoSQLBench clients and runs workloads on them.
package nosqlbench

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/g5kbench/cassbench/internal/actions"
	"github.com/g5kbench/cassbench/internal/containers"
	"github.com/g5kbench/cassbench/internal/inventory"
	"github.com/g5kbench/cassbench/internal/plan"
	"github.com/g5kbench/cassbench/internal/remote"
)

const (
	DefaultRootPath          = "/root/nosqlbench"
	DefaultConfDir           = "conf"
	DefaultDataDir           = "data"
	DefaultContainerConfPath = "/etc/nosqlbench"
	DefaultContainerDataPath = "/var/lib/nosqlbench"
	DefaultLocalTemplatePath = "templates/nb"
)

var ErrNoHosts = errors.New("no nosqlbench hosts")

type Options struct {
	Name              string
	Image             string
	RootPath          string
	ConfDir           string
	DataDir           string
	ContainerConfPath string
	ContainerDataPath string
	LocalTemplatePath string
	Parallelism       int
}

func (o *Options) applyDefaults() {
	if o.RootPath == "" {
		o.RootPath = DefaultRootPath
	}
	if o.ConfDir == "" {
		o.ConfDir = DefaultConfDir
	}
	if o.DataDir == "" {
		o.DataDir = DefaultDataDir
	}
	if o.ContainerConfPath == "" {
		o.ContainerConfPath = DefaultContainerConfPath
	}
	if o.ContainerDataPath == "" {
		o.ContainerDataPath = DefaultContainerDataPath
	}
	if o.LocalTemplatePath == "" {
		o.LocalTemplatePath = DefaultLocalTemplatePath
	}
}

type NoSQLBench struct {
	Options
	exec  remote.Executor
	hosts []*inventory.Host
}

func New(exec remote.Executor, opts Options) (*NoSQLBench, error) {
	if opts.Name == "" {
		return nil, errors.New("nosqlbench needs a container name")
	}
	if opts.Image == "" {
		return nil, errors.New("nosqlbench needs a docker image")
	}
	opts.applyDefaults()
	return &NoSQLBench{Options: opts, exec: exec}, nil
}

func (n *NoSQLBench) ConfPath() string { return n.RootPath + "/" + n.ConfDir }
func (n *NoSQLBench) DataPath() string { return n.RootPath + "/" + n.DataDir }

func (n *NoSQLBench) SetHosts(hosts []*inventory.Host) {
	n.hosts = hosts
}

func (n *NoSQLBench) Hosts() []*inventory.Host {
	return n.hosts
}

func (n *NoSQLBench) HostCount() int {
	return len(n.hosts)
}

func (n *NoSQLBench) DeployPlan() (*plan.Plan, error) {
	p := plan.NewPlan("nosqlbench")
	err := p.Append(
		actions.MakeDir(n.RootPath),
		actions.Upload(n.LocalTemplatePath, n.RootPath),
		actions.MakeDir(n.ConfPath()),
		actions.MakeDir(n.DataPath()),
		actions.PullImage(n.Image),
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Deploy copies the workload templates to every client and pulls the image.
func (n *NoSQLBench) Deploy(ctx context.Context) error {
	if len(n.hosts) == 0 {
		return ErrNoHosts
	}
	if _, err := os.Stat(n.LocalTemplatePath); err != nil {
		return fmt.Errorf("workload templates: %w", err)
	}
	p, err := n.DeployPlan()
	if err != nil {
		return err
	}
	if err := remote.Batch(ctx, n.exec, n.hosts, n.Parallelism, p); err != nil {
		return err
	}
	log.Info("nosqlbench has been deployed, ready to benchmark")
	return nil
}

func (n *NoSQLBench) container(cmd *Command) *containers.Container {
	return &containers.Container{
		Name:        n.Name,
		Image:       n.Image,
		Cmd:         cmd.Tokens(),
		HostNetwork: true,
		Mounts: []containers.Mount{
			{Source: n.ConfPath(), Target: n.ContainerConfPath},
			{Source: n.DataPath(), Target: n.ContainerDataPath},
		},
	}
}

// Run runs cmd to completion on hosts, or on every client when hosts is empty.
func (n *NoSQLBench) Run(ctx context.Context, cmd *Command, hosts []*inventory.Host) error {
	if len(hosts) == 0 {
		hosts = n.hosts
	}
	if len(hosts) == 0 {
		return ErrNoHosts
	}
	p := plan.NewPlan("nosqlbench-run")
	if err := p.Add(actions.RunContainer(n.container(cmd))); err != nil {
		return err
	}
	log.Info("running command", "cmd", cmd.String(), "hosts", len(hosts))
	return remote.Batch(ctx, n.exec, hosts, n.Parallelism, p)
}

func DefaultResultsDir(now time.Time) string {
	return "./results_" + now.Format(time.RFC3339)
}

// SyncResults pulls the data directory of each host into dest/<address> and
// returns dest.
func (n *NoSQLBench) SyncResults(ctx context.Context, dest string, hosts []*inventory.Host) (string, error) {
	if dest == "" {
		dest = DefaultResultsDir(time.Now())
	}
	if len(hosts) == 0 {
		hosts = n.hosts
	}
	if len(hosts) == 0 {
		return "", ErrNoHosts
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", fmt.Errorf("error creating results directory: %w", err)
	}
	p := plan.NewPlan("nosqlbench-sync")
	if err := p.Add(actions.Download(n.DataPath(), filepath.Join(dest, actions.PlaceholderAddress))); err != nil {
		return "", err
	}
	if err := remote.Batch(ctx, n.exec, hosts, n.Parallelism, p); err != nil {
		return "", err
	}
	log.Info("results synced", "dest", dest)
	return dest, nil
}
