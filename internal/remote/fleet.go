package remote

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/g5kbench/cassbench/internal/containers"
	"github.com/g5kbench/cassbench/internal/inventory"
)

type hostConn struct {
	mu     sync.Mutex
	ssh    *SSHClient
	docker *containers.DockerManager
}

// Fleet is the SSH backed Executor. It keeps one SSH connection and one
// docker client per host, opened on first use.
type Fleet struct {
	config SSHConfig

	mu    sync.Mutex
	conns map[string]*hostConn
}

func NewFleet(cfg SSHConfig) *Fleet {
	return &Fleet{config: cfg, conns: make(map[string]*hostConn)}
}

// conn holds only the host's lock while dialing so hosts connect in parallel.
func (f *Fleet) conn(ctx context.Context, h *inventory.Host) (*hostConn, error) {
	f.mu.Lock()
	c, ok := f.conns[h.Address]
	if !ok {
		c = &hostConn{}
		f.conns[h.Address] = c
	}
	f.mu.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ssh != nil {
		return c, nil
	}
	sshClient, err := Dial(ctx, h.Address, f.config)
	if err != nil {
		return nil, err
	}
	docker, err := containers.NewDockerManager(h.Address, sshClient.DialContext)
	if err != nil {
		_ = sshClient.Close()
		return nil, err
	}
	c.ssh = sshClient
	c.docker = docker
	log.Debug("connected", "host", h.Address)
	return c, nil
}

func (f *Fleet) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var errs []error
	for addr, c := range f.conns {
		c.mu.Lock()
		if c.ssh != nil {
			c.docker.Close()
			if err := c.ssh.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing %v: %w", addr, err))
			}
		}
		c.mu.Unlock()
		delete(f.conns, addr)
	}
	return errors.Join(errs...)
}

func (f *Fleet) Shell(ctx context.Context, h *inventory.Host, command string) (string, error) {
	c, err := f.conn(ctx, h)
	if err != nil {
		return "", err
	}
	return c.ssh.Run(ctx, command)
}

func (f *Fleet) MakeDir(ctx context.Context, h *inventory.Host, path string) error {
	_, err := f.Shell(ctx, h, "mkdir -p "+shellQuote(path))
	return err
}

func (f *Fleet) Upload(ctx context.Context, h *inventory.Host, localDir, remoteDir string) error {
	c, err := f.conn(ctx, h)
	if err != nil {
		return err
	}
	return c.ssh.Upload(ctx, localDir, remoteDir)
}

func (f *Fleet) Download(ctx context.Context, h *inventory.Host, remoteDir, localDir string) error {
	c, err := f.conn(ctx, h)
	if err != nil {
		return err
	}
	return c.ssh.Download(ctx, remoteDir, localDir)
}

func (f *Fleet) Sysctl(ctx context.Context, h *inventory.Host, key, value string) error {
	_, err := f.Shell(ctx, h, fmt.Sprintf("sysctl -w %v=%v", key, shellQuote(value)))
	return err
}

func (f *Fleet) PullImage(ctx context.Context, h *inventory.Host, image string) error {
	c, err := f.conn(ctx, h)
	if err != nil {
		return err
	}
	return c.docker.PullImage(ctx, image)
}

func (f *Fleet) EnsureContainer(ctx context.Context, h *inventory.Host, ctr *containers.Container) error {
	c, err := f.conn(ctx, h)
	if err != nil {
		return err
	}
	_, err = c.docker.EnsureContainer(ctx, ctr)
	return err
}

func (f *Fleet) StartContainer(ctx context.Context, h *inventory.Host, name string) error {
	c, err := f.conn(ctx, h)
	if err != nil {
		return err
	}
	return c.docker.StartContainer(ctx, name)
}

func (f *Fleet) RunContainer(ctx context.Context, h *inventory.Host, ctr *containers.Container) (*containers.RunResult, error) {
	c, err := f.conn(ctx, h)
	if err != nil {
		return nil, err
	}
	return c.docker.RunContainer(ctx, ctr)
}

func (f *Fleet) RemoveContainer(ctx context.Context, h *inventory.Host, name string) error {
	c, err := f.conn(ctx, h)
	if err != nil {
		return err
	}
	return c.docker.RemoveContainer(ctx, name)
}

func (f *Fleet) InspectContainer(ctx context.Context, h *inventory.Host, name string) (*containers.ContainerState, error) {
	c, err := f.conn(ctx, h)
	if err != nil {
		return nil, err
	}
	return c.docker.InspectContainer(ctx, name)
}

func (f *Fleet) Exec(ctx context.Context, h *inventory.Host, container string, cmd ...string) (string, error) {
	c, err := f.conn(ctx, h)
	if err != nil {
		return "", err
	}
	return c.docker.Exec(ctx, container, cmd...)
}
