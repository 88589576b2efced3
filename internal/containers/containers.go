package containers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
)

type Mount struct {
	Source   string
	Target   string
	ReadOnly bool
}

// Container describes a container to create on a host. Only host networking
// is supported; the cluster relies on nodes reaching each other directly.
type Container struct {
	Name        string
	Image       string
	Cmd         []string
	Env         []string
	Mounts      []Mount
	HostNetwork bool
}

func (c *Container) config() (*container.Config, *container.HostConfig) {
	cfg := &container.Config{
		Image: c.Image,
		Cmd:   c.Cmd,
		Env:   c.Env,
	}
	hostCfg := &container.HostConfig{}
	if c.HostNetwork {
		hostCfg.NetworkMode = "host"
	}
	for _, m := range c.Mounts {
		hostCfg.Mounts = append(hostCfg.Mounts, mount.Mount{
			Type:     mount.TypeBind,
			Source:   m.Source,
			Target:   m.Target,
			ReadOnly: m.ReadOnly,
		})
	}
	return cfg, hostCfg
}

type ContainerState struct {
	Name     string
	Image    string
	Status   string
	Running  bool
	ExitCode int
}

// RunResult is the outcome of a container run to completion.
type RunResult struct {
	ExitCode int64
	Stdout   string
	Stderr   string
}

func (d *DockerManager) InspectContainer(ctx context.Context, name string) (*ContainerState, error) {
	info, err := d.docker.ContainerInspect(ctx, name)
	if err != nil {
		if client.IsErrNotFound(err) {
			return nil, fmt.Errorf("%v on %v: %w", name, d.host, ErrContainerNotFound)
		}
		return nil, fmt.Errorf("error inspecting container %v: %w", name, err)
	}
	state := &ContainerState{Name: strings.TrimPrefix(info.Name, "/")}
	if info.Config != nil {
		state.Image = info.Config.Image
	}
	if info.State != nil {
		state.Status = info.State.Status
		state.Running = info.State.Running
		state.ExitCode = info.State.ExitCode
	}
	return state, nil
}

// PullImage pulls ref unless the host already has it.
func (d *DockerManager) PullImage(ctx context.Context, ref string) error {
	if _, _, err := d.docker.ImageInspectWithRaw(ctx, ref); err == nil {
		log.Debug("image present", "host", d.host, "image", ref)
		return nil
	} else if !client.IsErrNotFound(err) {
		return fmt.Errorf("error inspecting image %v: %w", ref, err)
	}
	log.Info("pulling image", "host", d.host, "image", ref)
	reader, err := d.docker.ImagePull(ctx, ref, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("error pulling image %v: %w", ref, err)
	}
	defer reader.Close()
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return fmt.Errorf("error reading pull output for %v: %w", ref, err)
	}
	return nil
}

// EnsureContainer creates c unless a container with the same name already
// exists. The container is not started. It reports whether a new container
// was created.
func (d *DockerManager) EnsureContainer(ctx context.Context, c *Container) (bool, error) {
	_, err := d.InspectContainer(ctx, c.Name)
	if err == nil {
		log.Debug("container present", "host", d.host, "container", c.Name)
		return false, nil
	}
	if !errors.Is(err, ErrContainerNotFound) {
		return false, err
	}
	if err := d.PullImage(ctx, c.Image); err != nil {
		return false, err
	}
	cfg, hostCfg := c.config()
	resp, err := d.docker.ContainerCreate(ctx, cfg, hostCfg, nil, nil, c.Name)
	if err != nil {
		return false, fmt.Errorf("error creating container %v: %w", c.Name, err)
	}
	for _, w := range resp.Warnings {
		log.Warn("container create", "host", d.host, "container", c.Name, "warning", w)
	}
	log.Debug("container created", "host", d.host, "container", c.Name, "id", resp.ID)
	return true, nil
}

func (d *DockerManager) StartContainer(ctx context.Context, name string) error {
	state, err := d.InspectContainer(ctx, name)
	if err != nil {
		return err
	}
	if state.Running {
		log.Debug("container already running", "host", d.host, "container", name)
		return nil
	}
	if err := d.docker.ContainerStart(ctx, name, container.StartOptions{}); err != nil {
		return fmt.Errorf("error starting container %v: %w", name, err)
	}
	return nil
}

func (d *DockerManager) RemoveContainer(ctx context.Context, name string) error {
	err := d.docker.ContainerRemove(ctx, name, container.RemoveOptions{Force: true})
	if err != nil && !client.IsErrNotFound(err) {
		return fmt.Errorf("error removing container %v: %w", name, err)
	}
	return nil
}

// RunContainer replaces any container named c.Name, runs c to completion and
// removes it. A non-zero exit code is returned as an error along with the
// captured output.
func (d *DockerManager) RunContainer(ctx context.Context, c *Container) (*RunResult, error) {
	if err := d.RemoveContainer(ctx, c.Name); err != nil {
		return nil, err
	}
	if err := d.PullImage(ctx, c.Image); err != nil {
		return nil, err
	}
	cfg, hostCfg := c.config()
	resp, err := d.docker.ContainerCreate(ctx, cfg, hostCfg, nil, nil, c.Name)
	if err != nil {
		return nil, fmt.Errorf("error creating container %v: %w", c.Name, err)
	}
	defer func() {
		if err := d.RemoveContainer(context.WithoutCancel(ctx), resp.ID); err != nil {
			log.Warn("leftover container", "host", d.host, "container", c.Name, "err", err)
		}
	}()

	// register before start so a fast exit is not missed
	waitCh, errCh := d.docker.ContainerWait(ctx, resp.ID, container.WaitConditionNextExit)
	if err := d.docker.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		return nil, fmt.Errorf("error starting container %v: %w", c.Name, err)
	}
	log.Debug("container running", "host", d.host, "container", c.Name, "cmd", strings.Join(c.Cmd, " "))

	result := &RunResult{}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-errCh:
		return nil, fmt.Errorf("error waiting for container %v: %w", c.Name, err)
	case status := <-waitCh:
		if status.Error != nil {
			return nil, fmt.Errorf("error waiting for container %v: %v", c.Name, status.Error.Message)
		}
		result.ExitCode = status.StatusCode
	}

	logs, err := d.docker.ContainerLogs(ctx, resp.ID, container.LogsOptions{ShowStdout: true, ShowStderr: true})
	if err != nil {
		return nil, fmt.Errorf("error reading logs of %v: %w", c.Name, err)
	}
	defer logs.Close()
	var stdout, stderr bytes.Buffer
	if _, err := stdcopy.StdCopy(&stdout, &stderr, logs); err != nil {
		return nil, fmt.Errorf("error reading logs of %v: %w", c.Name, err)
	}
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	if result.ExitCode != 0 {
		return result, fmt.Errorf("container %v exited with %v: %v", c.Name, result.ExitCode, lastLine(result.Stderr))
	}
	return result, nil
}

// Exec runs cmd inside the running container name and returns its stdout.
func (d *DockerManager) Exec(ctx context.Context, name string, cmd ...string) (string, error) {
	created, err := d.docker.ContainerExecCreate(ctx, name, container.ExecOptions{
		Cmd:          cmd,
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		if client.IsErrNotFound(err) {
			return "", fmt.Errorf("%v on %v: %w", name, d.host, ErrContainerNotFound)
		}
		return "", fmt.Errorf("error creating exec in %v: %w", name, err)
	}
	attached, err := d.docker.ContainerExecAttach(ctx, created.ID, container.ExecAttachOptions{})
	if err != nil {
		return "", fmt.Errorf("error attaching exec in %v: %w", name, err)
	}
	defer attached.Close()
	var stdout, stderr bytes.Buffer
	if _, err := stdcopy.StdCopy(&stdout, &stderr, attached.Reader); err != nil {
		return "", fmt.Errorf("error reading exec output in %v: %w", name, err)
	}
	inspect, err := d.docker.ContainerExecInspect(ctx, created.ID)
	if err != nil {
		return "", fmt.Errorf("error inspecting exec in %v: %w", name, err)
	}
	if inspect.ExitCode != 0 {
		return stdout.String(), fmt.Errorf("%v in %v exited with %v: %v", strings.Join(cmd, " "), name, inspect.ExitCode, lastLine(stderr.String()))
	}
	return stdout.String(), nil
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
