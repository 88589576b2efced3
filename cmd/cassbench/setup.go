package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/g5kbench/cassbench/internal/attributes"
	"github.com/g5kbench/cassbench/internal/cassandra"
	"github.com/g5kbench/cassbench/internal/config"
	"github.com/g5kbench/cassbench/internal/driver"
	"github.com/g5kbench/cassbench/internal/nosqlbench"
	"github.com/g5kbench/cassbench/internal/provider"
	"github.com/g5kbench/cassbench/internal/provider/g5k"
	"github.com/g5kbench/cassbench/internal/provider/static"
	"github.com/g5kbench/cassbench/internal/remote"
)

type bench struct {
	config *config.Config
	fleet  *remote.Fleet
	driver *driver.Driver
}

func (b *bench) Close() {
	if err := b.fleet.Close(); err != nil {
		log.Warn("error closing connections", "err", err)
	}
}

func setupDirectories(c *config.Config) error {
	err := os.MkdirAll(c.WorkDir, 0o755)
	if err != nil && !errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("error creating work dir: %w", err)
	}
	return nil
}

func setupLogger(c *config.Config) {
	if c.UseStdout {
		log.Default().SetOutput(os.Stdout)
	}
	if c.Debug {
		log.Default().SetLevel(log.DebugLevel)
		log.Default().SetReportCaller(true)
	}
}

func newProvider(c *config.Config) (provider.Provider, error) {
	switch c.Provider {
	case g5k.Name:
		return g5k.New(c.G5K)
	case static.Name:
		return static.New(c.Static)
	}
	return nil, fmt.Errorf("unknown provider %q", c.Provider)
}

func loadConfig(ctx context.Context, configFile string, cliflags map[string]any) (*config.Config, error) {
	k, err := LoadConfigs(ctx, configFile, cliflags)
	if err != nil {
		return nil, fmt.Errorf("error generating config blob: %w", err)
	}
	c, err := config.NewConfig(k, nil)
	if err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return c, nil
}

func setup(ctx context.Context, configFile string, cliflags map[string]any) (*bench, error) {
	c, err := loadConfig(ctx, configFile, cliflags)
	if err != nil {
		return nil, err
	}
	err = c.Validate()
	if err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}
	if err := setupDirectories(c); err != nil {
		return nil, fmt.Errorf("error creating base directories: %w", err)
	}
	setupLogger(c)

	var overrides *attributes.AttributeVault
	if c.Attributes != "" {
		overrides, err = attributes.LoadVault(c.Attributes)
		if err != nil {
			return nil, err
		}
	}
	p, err := newProvider(c)
	if err != nil {
		return nil, err
	}
	fleet := remote.NewFleet(*c.SSH)
	d, err := driver.New(p, fleet, driver.Options{
		StatePath:   c.StatePath(),
		Parallelism: c.Parallelism,
		Cleanup:     c.Cleanup,
		Docker:      *c.Docker,
		CassandraOptions: cassandra.Options{
			Name:         c.Cassandra.Name,
			Image:        c.Cassandra.Image,
			RootPath:     c.Cassandra.RootPath,
			LocalTmpPath: c.Cassandra.LocalTmpPath,
			SpawnDelay:   &c.Cassandra.SpawnDelay,
			Recreate:     c.Cassandra.Recreate,
			Overrides:    overrides,
		},
		NoSQLBenchOptions: nosqlbench.Options{
			Name:     c.NoSQLBench.Name,
			Image:    c.NoSQLBench.Image,
			RootPath: c.NoSQLBench.RootPath,
		},
	})
	if err != nil {
		return nil, err
	}
	return &bench{config: c, fleet: fleet, driver: d}, nil
}

// syncWorkload fetches the workload templates and points the driver at them.
func (b *bench) syncWorkload(ctx context.Context, noSync bool) error {
	src, err := b.config.Source()
	if err != nil {
		return fmt.Errorf("invalid workload source: %w", err)
	}
	if noSync {
		log.Debug("skipping workload sync on request")
	} else {
		log.Debug("updating workload templates")
		if err := src.Sync(ctx); err != nil {
			return fmt.Errorf("error syncing workload: %w", err)
		}
	}
	b.driver.NoSQLBenchOptions.LocalTemplatePath = src.Path()
	return nil
}

func LoadConfigs(_ context.Context, configFile string, cliflags map[string]any) (*koanf.Koanf, error) {
	k := koanf.New(".")
	fileConf := koanf.New(".")
	envConf := koanf.New(".")
	cliConf := koanf.New(".")
	if configFile != "" {
		err := fileConf.Load(file.Provider(configFile), toml.Parser())
		if err != nil {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}
	err := envConf.Load(env.Provider("CASSBENCH_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, "CASSBENCH_")), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("error loading config from env: %w", err)
	}
	err = cliConf.Load(confmap.Provider(cliflags, "."), nil)
	if err != nil {
		return nil, err
	}
	for _, conf := range []*koanf.Koanf{fileConf, envConf, cliConf} {
		if err := k.Merge(conf); err != nil {
			return nil, fmt.Errorf("error building config: %w", err)
		}
	}
	return k, nil
}
