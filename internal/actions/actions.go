package actions

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/g5kbench/cassbench/internal/containers"
	"github.com/g5kbench/cassbench/internal/inventory"
)

type ActionType int

const (
	ActionUnknown ActionType = iota

	ActionMakeDir
	ActionUpload
	ActionDownload
	ActionShell
	ActionSysctl

	ActionPullImage
	ActionEnsureContainer
	ActionStartContainer
	ActionRunContainer
	ActionRemoveContainer
)

var actionNames = []string{
	"Unknown",
	"MakeDir", "Upload", "Download", "Shell", "Sysctl",
	"PullImage", "EnsureContainer", "StartContainer", "RunContainer", "RemoveContainer",
}

func (t ActionType) String() string {
	if t < 0 || int(t) >= len(actionNames) {
		return fmt.Sprintf("ActionType(%d)", int(t))
	}
	return actionNames[t]
}

func (t ActionType) IsContainerAction() bool {
	return t >= ActionPullImage && t <= ActionRemoveContainer
}

func (t ActionType) IsFileAction() bool {
	return t == ActionMakeDir || t == ActionUpload || t == ActionDownload
}

// Placeholders expanded per host in Path, Local and Command.
const (
	PlaceholderAddress       = "{{address}}"
	PlaceholderLocalRootPath = "{{local_root_path}}"
	PlaceholderLocalConfPath = "{{local_conf_path}}"
)

// Action is one step run against a host. Which fields are used depends on
// Todo: Path is the remote path, Local the local one.
type Action struct {
	Todo      ActionType            `json:"todo" toml:"todo"`
	Path      string                `json:"path,omitempty" toml:"path,omitempty"`
	Local     string                `json:"local,omitempty" toml:"local,omitempty"`
	Command   string                `json:"command,omitempty" toml:"command,omitempty"`
	Key       string                `json:"key,omitempty" toml:"key,omitempty"`
	Value     string                `json:"value,omitempty" toml:"value,omitempty"`
	Image     string                `json:"image,omitempty" toml:"image,omitempty"`
	Container *containers.Container `json:"container,omitempty" toml:"-"`
	Priority  int                   `json:"priority" toml:"priority"`
}

func MakeDir(path string) Action {
	return Action{Todo: ActionMakeDir, Path: path}
}

// Upload copies the contents of the local directory into path.
func Upload(local, path string) Action {
	return Action{Todo: ActionUpload, Local: local, Path: path}
}

func Download(path, local string) Action {
	return Action{Todo: ActionDownload, Path: path, Local: local}
}

func Shell(command string) Action {
	return Action{Todo: ActionShell, Command: command}
}

func Sysctl(key, value string) Action {
	return Action{Todo: ActionSysctl, Key: key, Value: value}
}

func PullImage(image string) Action {
	return Action{Todo: ActionPullImage, Image: image}
}

func EnsureContainer(c *containers.Container) Action {
	return Action{Todo: ActionEnsureContainer, Container: c}
}

func StartContainer(name string) Action {
	return Action{Todo: ActionStartContainer, Container: &containers.Container{Name: name}}
}

func RunContainer(c *containers.Container) Action {
	return Action{Todo: ActionRunContainer, Container: c}
}

func RemoveContainer(name string) Action {
	return Action{Todo: ActionRemoveContainer, Container: &containers.Container{Name: name}}
}

func (a Action) Validate() error {
	switch a.Todo {
	case ActionUnknown:
		return errors.New("unknown action")
	case ActionMakeDir:
		if a.Path == "" {
			return errors.New("mkdir without path")
		}
	case ActionUpload, ActionDownload:
		if a.Path == "" || a.Local == "" {
			return fmt.Errorf("%v needs both a local and a remote path", a.Todo)
		}
	case ActionShell:
		if a.Command == "" {
			return errors.New("shell action without command")
		}
	case ActionSysctl:
		if a.Key == "" {
			return errors.New("sysctl action without key")
		}
	case ActionPullImage:
		if a.Image == "" {
			return errors.New("pull action without image")
		}
	case ActionEnsureContainer, ActionRunContainer:
		if a.Container == nil || a.Container.Name == "" || a.Container.Image == "" {
			return fmt.Errorf("%v needs a container name and image", a.Todo)
		}
	case ActionStartContainer, ActionRemoveContainer:
		if a.Container == nil || a.Container.Name == "" {
			return fmt.Errorf("%v needs a container name", a.Todo)
		}
	default:
		return fmt.Errorf("invalid action type %v", a.Todo)
	}
	return nil
}

// Expand returns a copy of a with the host placeholders filled in.
func (a Action) Expand(h *inventory.Host) Action {
	r := strings.NewReplacer(
		PlaceholderAddress, h.Address,
		PlaceholderLocalRootPath, h.LocalRootPath,
		PlaceholderLocalConfPath, h.LocalConfPath,
	)
	a.Path = r.Replace(a.Path)
	a.Local = r.Replace(a.Local)
	a.Command = r.Replace(a.Command)
	return a
}

func (a Action) target() string {
	switch a.Todo {
	case ActionUpload:
		return fmt.Sprintf("%v -> %v", a.Local, a.Path)
	case ActionDownload:
		return fmt.Sprintf("%v -> %v", a.Path, a.Local)
	case ActionShell:
		return a.Command
	case ActionSysctl:
		return fmt.Sprintf("%v=%v", a.Key, a.Value)
	case ActionPullImage:
		return a.Image
	}
	if a.Container != nil {
		if a.Container.Image != "" {
			return fmt.Sprintf("%v (%v)", a.Container.Name, a.Container.Image)
		}
		return a.Container.Name
	}
	return a.Path
}

func (a Action) String() string {
	return fmt.Sprintf("{a %v %v }", a.Todo, a.target())
}

func (a Action) Pretty() string {
	return fmt.Sprintf("%v %v", a.Todo, a.target())
}

func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Todo     string
		Target   string
		Priority int
	}{
		Todo:     a.Todo.String(),
		Target:   a.target(),
		Priority: a.Priority,
	})
}
