// Package remote runs actions on reserved hosts over SSH.
package remote

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/g5kbench/cassbench/internal/actions"
	"github.com/g5kbench/cassbench/internal/containers"
	"github.com/g5kbench/cassbench/internal/inventory"
)

// Executor performs single operations on one host.
type Executor interface {
	Shell(ctx context.Context, h *inventory.Host, command string) (string, error)
	MakeDir(ctx context.Context, h *inventory.Host, path string) error
	Upload(ctx context.Context, h *inventory.Host, localDir, remoteDir string) error
	Download(ctx context.Context, h *inventory.Host, remoteDir, localDir string) error
	Sysctl(ctx context.Context, h *inventory.Host, key, value string) error
	PullImage(ctx context.Context, h *inventory.Host, image string) error
	EnsureContainer(ctx context.Context, h *inventory.Host, c *containers.Container) error
	StartContainer(ctx context.Context, h *inventory.Host, name string) error
	RunContainer(ctx context.Context, h *inventory.Host, c *containers.Container) (*containers.RunResult, error)
	RemoveContainer(ctx context.Context, h *inventory.Host, name string) error
	InspectContainer(ctx context.Context, h *inventory.Host, name string) (*containers.ContainerState, error)
	Exec(ctx context.Context, h *inventory.Host, container string, cmd ...string) (string, error)
}

// Perform runs a single action against h after expanding host placeholders.
func Perform(ctx context.Context, e Executor, h *inventory.Host, a actions.Action) error {
	a = a.Expand(h)
	log.Debug("action", "host", h.Address, "todo", a.Todo, "action", a.Pretty())
	var err error
	switch a.Todo {
	case actions.ActionMakeDir:
		err = e.MakeDir(ctx, h, a.Path)
	case actions.ActionUpload:
		err = e.Upload(ctx, h, a.Local, a.Path)
	case actions.ActionDownload:
		err = e.Download(ctx, h, a.Path, a.Local)
	case actions.ActionShell:
		_, err = e.Shell(ctx, h, a.Command)
	case actions.ActionSysctl:
		err = e.Sysctl(ctx, h, a.Key, a.Value)
	case actions.ActionPullImage:
		err = e.PullImage(ctx, h, a.Image)
	case actions.ActionEnsureContainer:
		err = e.EnsureContainer(ctx, h, a.Container)
	case actions.ActionStartContainer:
		err = e.StartContainer(ctx, h, a.Container.Name)
	case actions.ActionRunContainer:
		_, err = e.RunContainer(ctx, h, a.Container)
	case actions.ActionRemoveContainer:
		err = e.RemoveContainer(ctx, h, a.Container.Name)
	default:
		err = fmt.Errorf("invalid action type %v", a.Todo)
	}
	if err != nil {
		return fmt.Errorf("%v on %v: %w", a.Todo, h.Address, err)
	}
	return nil
}
