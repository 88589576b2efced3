package containers

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/charmbracelet/log"
	"github.com/docker/docker/client"
)

var ErrContainerNotFound error = errors.New("no such container")

const DefaultSocket = "/var/run/docker.sock"

// DialFunc opens a connection to the docker daemon socket. Remote hosts hand
// in a dialer that forwards over their SSH connection.
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

type DockerManager struct {
	host   string
	docker *client.Client
}

func NewDockerManager(host string, dial DialFunc) (*DockerManager, error) {
	opts := []client.Opt{
		client.WithHost("unix://" + DefaultSocket),
		client.WithAPIVersionNegotiation(),
	}
	if dial != nil {
		opts = append(opts, client.WithDialContext(func(ctx context.Context, _, _ string) (net.Conn, error) {
			return dial(ctx, "unix", DefaultSocket)
		}))
	}
	docker, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating docker client for %v: %w", host, err)
	}
	log.Debug("docker client ready", "host", host)
	return &DockerManager{host: host, docker: docker}, nil
}

func (d *DockerManager) Host() string {
	return d.host
}

func (d *DockerManager) Close() {
	if d.docker != nil {
		_ = d.docker.Close()
	}
}
