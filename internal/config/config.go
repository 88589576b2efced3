// Package config builds the typed run configuration from a merged koanf tree.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"

	"github.com/g5kbench/cassbench/internal/bootstrap"
	"github.com/g5kbench/cassbench/internal/cassandra"
	"github.com/g5kbench/cassbench/internal/nosqlbench"
	"github.com/g5kbench/cassbench/internal/provider"
	"github.com/g5kbench/cassbench/internal/provider/g5k"
	"github.com/g5kbench/cassbench/internal/provider/static"
	"github.com/g5kbench/cassbench/internal/remote"
	"github.com/g5kbench/cassbench/internal/source"
)

const (
	DefaultWorkDir          = ".cassbench"
	DefaultProvider         = g5k.Name
	DefaultWalltime         = "1:00:00"
	DefaultJobName          = "cassandra"
	DefaultCassandraName    = "cassandra"
	DefaultCassandraImage   = "cassandra:4.1"
	DefaultCassandraConfig  = "templates/cassandra.yaml"
	DefaultNoSQLBenchName   = "nosqlbench"
	DefaultNoSQLBenchImage  = "nosqlbench/nosqlbench:latest"
	DefaultNoSQLBenchSource = nosqlbench.DefaultLocalTemplatePath
	StateFile               = "state.toml"
)

type CassandraConfig struct {
	Name         string
	Image        string
	Template     string
	RootPath     string
	LocalTmpPath string
	SpawnDelay   time.Duration
	LogStatus    bool
	Recreate     bool
}

type NoSQLBenchConfig struct {
	Name     string
	Image    string
	Workload string
	RootPath string
	Results  string
}

type Config struct {
	Debug       bool
	UseStdout   bool
	Cleanup     bool
	WorkDir     string
	Provider    string
	Attributes  string
	Parallelism int
	Request     provider.Request
	SSH         *remote.SSHConfig
	Docker      *remote.DockerConfig
	G5K         *g5k.Config
	Static      *static.Config
	Cassandra   CassandraConfig
	NoSQLBench  NoSQLBenchConfig

	// source options such as git.branch live under [nosqlbench]
	sourceConf *koanf.Koanf
}

func NewConfig(k *koanf.Koanf, cliflags map[string]any) (*Config, error) {
	var c Config
	var err error

	// cli flags win over file and env
	if len(cliflags) > 0 {
		err = k.Load(confmap.Provider(cliflags, "."), nil)
		if err != nil {
			return nil, err
		}
	}

	c.Debug = k.Bool("debug")
	c.UseStdout = k.Bool("stdout")
	c.WorkDir = k.String("workdir")
	c.Provider = k.String("provider")
	c.Attributes = k.String("attributes")
	c.Parallelism = k.Int("parallelism")
	c.Cleanup = true
	if k.Exists("cleanup") {
		c.Cleanup = k.Bool("cleanup")
	}

	c.Request.Site = k.String("request.site")
	c.Request.Cluster = k.String("request.cluster")
	c.Request.Reservation = k.String("request.reservation")
	c.Request.Walltime = k.String("request.walltime")
	c.Request.JobName = k.String("request.job_name")
	c.Request.NodeCount = k.Int("request.node_count")
	c.Request.SeedCount = k.Int("request.seed_count")
	c.Request.ClientCount = k.Int("request.client_count")
	c.Request.JobTypes = k.Strings("request.job_types")

	c.SSH, err = remote.NewSSHConfig(k.Cut("ssh"))
	if err != nil {
		return nil, err
	}
	c.Docker, err = remote.NewDockerConfig(k.Cut("docker"))
	if err != nil {
		return nil, err
	}
	if !k.Exists("docker.registry_mirror") {
		c.Docker.RegistryMirror = remote.DefaultRegistryMirror
	}
	c.G5K, err = g5k.NewConfig(k.Cut("g5k"))
	if err != nil {
		return nil, err
	}
	c.Static, err = static.NewConfig(k.Cut("static"))
	if err != nil {
		return nil, err
	}

	c.Cassandra.Name = k.String("cassandra.name")
	c.Cassandra.Image = k.String("cassandra.image")
	c.Cassandra.Template = k.String("cassandra.template")
	c.Cassandra.RootPath = k.String("cassandra.root_path")
	c.Cassandra.LocalTmpPath = k.String("cassandra.local_tmp_path")
	c.Cassandra.SpawnDelay = bootstrap.DefaultSpawnDelay
	if k.Exists("cassandra.spawn_delay") {
		c.Cassandra.SpawnDelay = k.Duration("cassandra.spawn_delay")
	}
	c.Cassandra.Recreate = k.Bool("cassandra.recreate")
	c.Cassandra.LogStatus = true
	if k.Exists("cassandra.log_status") {
		c.Cassandra.LogStatus = k.Bool("cassandra.log_status")
	}

	c.NoSQLBench.Name = k.String("nosqlbench.name")
	c.NoSQLBench.Image = k.String("nosqlbench.image")
	c.NoSQLBench.Workload = k.String("nosqlbench.workload")
	c.NoSQLBench.RootPath = k.String("nosqlbench.root_path")
	c.NoSQLBench.Results = k.String("nosqlbench.results")
	c.sourceConf = k.Cut("nosqlbench")

	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.WorkDir == "" {
		c.WorkDir = DefaultWorkDir
	}
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.Parallelism == 0 {
		c.Parallelism = remote.DefaultParallelism
	}
	if c.Request.Walltime == "" {
		c.Request.Walltime = DefaultWalltime
	}
	if c.Request.JobName == "" {
		c.Request.JobName = DefaultJobName
	}
	if len(c.Request.JobTypes) == 0 {
		c.Request.JobTypes = []string{provider.DefaultJobType}
	}
	if c.Cassandra.Name == "" {
		c.Cassandra.Name = DefaultCassandraName
	}
	if c.Cassandra.Image == "" {
		c.Cassandra.Image = DefaultCassandraImage
	}
	if c.Cassandra.Template == "" {
		c.Cassandra.Template = DefaultCassandraConfig
	}
	if c.Cassandra.RootPath == "" {
		c.Cassandra.RootPath = cassandra.DefaultRootPath
	}
	if c.Cassandra.LocalTmpPath == "" {
		c.Cassandra.LocalTmpPath = filepath.Join(c.WorkDir, cassandra.DefaultLocalTmpPath)
	}
	if c.NoSQLBench.Name == "" {
		c.NoSQLBench.Name = DefaultNoSQLBenchName
	}
	if c.NoSQLBench.Image == "" {
		c.NoSQLBench.Image = DefaultNoSQLBenchImage
	}
	if c.NoSQLBench.Workload == "" {
		c.NoSQLBench.Workload = DefaultNoSQLBenchSource
	}
	if c.NoSQLBench.RootPath == "" {
		c.NoSQLBench.RootPath = nosqlbench.DefaultRootPath
	}
}

func (c *Config) Validate() error {
	if c.WorkDir == "" {
		return errors.New("need work directory")
	}
	if c.Parallelism < 0 {
		return errors.New("parallelism can't be negative")
	}
	if c.Cassandra.SpawnDelay < 0 {
		return errors.New("spawn delay can't be negative")
	}
	if err := c.Request.Validate(); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	switch c.Provider {
	case g5k.Name:
		if c.Request.Site == "" {
			return errors.New("grid5000 provider needs a site")
		}
		if c.Request.Cluster == "" {
			return errors.New("grid5000 provider needs a cluster")
		}
		return c.G5K.Validate()
	case static.Name:
		return c.Static.Validate()
	}
	return fmt.Errorf("unknown provider %q", c.Provider)
}

// StatePath is where the reservation of the current run is kept.
func (c *Config) StatePath() string {
	return filepath.Join(c.WorkDir, StateFile)
}

func (c *Config) CacheDir() string {
	return filepath.Join(c.WorkDir, "cache")
}

// Source returns the configured workload template source.
func (c *Config) Source() (source.Source, error) {
	k := c.sourceConf
	if k == nil {
		k = koanf.New(".")
	}
	return source.NewSource(k, c.NoSQLBench.Workload, c.CacheDir())
}

func (c *Config) String() string {
	var result string
	result += fmt.Sprintf("Debug mode: %v\n", c.Debug)
	result += fmt.Sprintf("STDOUT: %v\n", c.UseStdout)
	result += fmt.Sprintf("Cleanup: %v\n", c.Cleanup)
	result += fmt.Sprintf("Work dir: %v\n", c.WorkDir)
	result += fmt.Sprintf("Provider: %v\n", c.Provider)
	result += fmt.Sprintf("Attributes: %v\n", c.Attributes)
	result += fmt.Sprintf("Parallelism: %v\n", c.Parallelism)
	result += "Request:\n"
	result += c.Request.String()
	result += fmt.Sprintf("SSH user: %v\n", c.SSH.User)
	result += fmt.Sprintf("SSH key: %v\n", c.SSH.KeyFile)
	result += c.Docker.String()
	switch c.Provider {
	case g5k.Name:
		result += c.G5K.String()
	case static.Name:
		result += fmt.Sprintf("Static hosts: %v\n", c.Static.Hosts)
	}
	result += fmt.Sprintf("Cassandra: %v (%v)\n", c.Cassandra.Name, c.Cassandra.Image)
	result += fmt.Sprintf("Cassandra template: %v\n", c.Cassandra.Template)
	result += fmt.Sprintf("Cassandra spawn delay: %v\n", c.Cassandra.SpawnDelay)
	result += fmt.Sprintf("Cassandra recreate: %v\n", c.Cassandra.Recreate)
	result += fmt.Sprintf("NoSQLBench: %v (%v)\n", c.NoSQLBench.Name, c.NoSQLBench.Image)
	result += fmt.Sprintf("NoSQLBench workload: %v\n", c.NoSQLBench.Workload)
	return result
}
