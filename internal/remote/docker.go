package remote

import (
	"encoding/json"
	"fmt"

	"github.com/knadh/koanf/v2"

	"github.com/g5kbench/cassbench/internal/actions"
	"github.com/g5kbench/cassbench/internal/plan"
)

const (
	DefaultRegistryMirror = "http://docker-cache.grid5000.fr"
	dockerInstallCommand  = "command -v docker >/dev/null 2>&1 || curl -fsSL https://get.docker.com | sh"
)

// DockerConfig controls how hosts are prepared before containers run.
type DockerConfig struct {
	Install        bool
	RegistryMirror string
	// DataRoot moves /var/lib/docker, Grid5000 nodes have a small root partition
	DataRoot     string
	SetupCommand string
}

func NewDockerConfig(k *koanf.Koanf) (*DockerConfig, error) {
	var c DockerConfig
	c.Install = k.Bool("install")
	c.RegistryMirror = k.String("registry_mirror")
	c.DataRoot = k.String("data_root")
	c.SetupCommand = k.String("setup_command")
	return &c, nil
}

func (c DockerConfig) String() string {
	var result string
	result += fmt.Sprintf("Install docker: %v\n", c.Install)
	result += fmt.Sprintf("Registry mirror: %v\n", c.RegistryMirror)
	result += fmt.Sprintf("Data root: %v\n", c.DataRoot)
	result += fmt.Sprintf("Setup command: %v\n", c.SetupCommand)
	return result
}

// DockerPlan returns the host preparation steps for cfg.
func DockerPlan(cfg DockerConfig) (*plan.Plan, error) {
	p := plan.NewPlan("docker")
	if cfg.SetupCommand != "" {
		if err := p.Add(actions.Shell(cfg.SetupCommand)); err != nil {
			return nil, err
		}
	}
	if cfg.Install {
		if err := p.Add(actions.Shell(dockerInstallCommand)); err != nil {
			return nil, err
		}
	}
	if cfg.RegistryMirror != "" || cfg.DataRoot != "" {
		settings := map[string]any{}
		if cfg.RegistryMirror != "" {
			settings["registry-mirrors"] = []string{cfg.RegistryMirror}
		}
		if cfg.DataRoot != "" {
			settings["data-root"] = cfg.DataRoot
		}
		daemon, err := json.Marshal(settings)
		if err != nil {
			return nil, err
		}
		cmd := fmt.Sprintf("mkdir -p /etc/docker && printf '%%s' %v > /etc/docker/daemon.json && systemctl restart docker", shellQuote(string(daemon)))
		if err := p.Add(actions.Shell(cmd)); err != nil {
			return nil, err
		}
	}
	return p, nil
}
