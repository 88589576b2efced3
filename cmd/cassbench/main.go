package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/g5kbench/cassbench/internal/cassandra"
	"github.com/g5kbench/cassbench/internal/confgen"
	"github.com/g5kbench/cassbench/internal/nosqlbench"
	"github.com/g5kbench/cassbench/internal/plan"
)

var Version string

func printPlan(p *plan.Plan, format string) error {
	switch format {
	case "", "text":
		if p.Empty() {
			fmt.Printf("Plan %v: nothing to do\n", p.Name)
			return nil
		}
		fmt.Println(p.Pretty())
	case "json":
		jsonPlan, err := p.ToJson()
		if err != nil {
			return fmt.Errorf("error converting to json: %w", err)
		}
		fmt.Printf("%s\n", string(jsonPlan))
	default:
		return fmt.Errorf("unsupported output format")
	}
	return nil
}

func main() {
	cliflags := make(map[string]any)
	ctx := context.Background()

	var configFile string

	app := &cli.Command{
		Name:    "cassbench",
		Usage:   "Deploy Cassandra on Grid5000 and benchmark it with NoSQLBench",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "Specified TOML config file",
				Required:    false,
				Destination: &configFile,
				Aliases:     []string{"c"},
				Sources:     cli.EnvVars("CASSBENCH_CONFIG"),
				Action: func(ctx context.Context, cCtx *cli.Command, v string) error {
					if v == "" {
						return errors.New("config file passed without value")
					}
					if _, err := os.Stat(v); err != nil && os.IsNotExist(err) {
						return errors.New("config file not found")
					} else if err != nil {
						return err
					}
					return nil
				},
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
				Action: func(ctx context.Context, cm *cli.Command, b bool) error {
					cliflags["debug"] = b
					return nil
				},
			},
			&cli.BoolFlag{
				Name:  "stdout",
				Usage: "Log to stdout instead of stderr",
				Action: func(ctx context.Context, cm *cli.Command, b bool) error {
					cliflags["stdout"] = b
					return nil
				},
			},
			&cli.StringFlag{
				Name:    "workdir",
				Aliases: []string{"w"},
				Usage:   "Directory holding run state and staging files",
				Action: func(ctx context.Context, cm *cli.Command, v string) error {
					cliflags["workdir"] = v
					return nil
				},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Dump active config",
				Action: func(ctx context.Context, cCtx *cli.Command) error {
					c, err := loadConfig(ctx, configFile, cliflags)
					if err != nil {
						return err
					}
					fmt.Println(c)
					return nil
				},
			},
			{
				Name:  "reserve",
				Usage: "Reserve hosts and prepare docker on them",
				Action: func(ctx context.Context, cCtx *cli.Command) error {
					b, err := setup(ctx, configFile, cliflags)
					if err != nil {
						return err
					}
					defer b.Close()
					return b.driver.GetResources(ctx, b.config.Request)
				},
			},
			{
				Name:  "hosts",
				Usage: "Show reserved hosts by role",
				Action: func(ctx context.Context, cCtx *cli.Command) error {
					b, err := setup(ctx, configFile, cliflags)
					if err != nil {
						return err
					}
					defer b.Close()
					roles, err := b.driver.Roles()
					if err != nil {
						return err
					}
					fmt.Print(roles.Pretty())
					return nil
				},
			},
			{
				Name:  "render",
				Usage: "Render cassandra.yaml for each node without deploying",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "diff",
						Aliases: []string{"d"},
						Usage:   "Show changes against the template instead of full files",
					},
					&cli.StringFlag{
						Name:    "template",
						Aliases: []string{"t"},
						Usage:   "Template to render",
					},
				},
				Action: func(ctx context.Context, cCtx *cli.Command) error {
					b, err := setup(ctx, configFile, cliflags)
					if err != nil {
						return err
					}
					defer b.Close()
					if cCtx.IsSet("recreate") {
						b.driver.CassandraOptions.Recreate = cCtx.Bool("recreate")
					}
					template := b.config.Cassandra.Template
					if cCtx.IsSet("template") {
						template = cCtx.String("template")
					}
					c, err := b.driver.Cassandra("", "")
					if err != nil {
						return err
					}
					defer func() { _ = c.Cleanup() }()
					for _, h := range c.Hosts() {
						rendered, err := confgen.Render(template, c.UpdateSpec(h))
						if err != nil {
							return fmt.Errorf("error rendering %v: %w", h.Address, err)
						}
						fmt.Printf("# %v (%v)\n", h.Address, strings.Join(h.Roles, ","))
						if cCtx.Bool("diff") {
							diff, err := confgen.Diff(template, rendered)
							if err != nil {
								return err
							}
							fmt.Println(diff)
							continue
						}
						fmt.Println(string(rendered))
					}
					return nil
				},
			},
			{
				Name:  "deploy",
				Usage: "Render configs, deploy and start cassandra seeds first",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "Container name",
					},
					&cli.StringFlag{
						Name:  "image",
						Usage: "Cassandra docker image",
					},
					&cli.StringFlag{
						Name:    "template",
						Aliases: []string{"t"},
						Usage:   "cassandra.yaml template",
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Only show the deployment plan",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Control plan output format. Supports text,json",
					},
					&cli.BoolFlag{
						Name:  "no-status",
						Usage: "Skip nodetool status once started",
					},
					&cli.BoolFlag{
						Name:  "recreate",
						Usage: "Remove existing cassandra containers before creating them",
					},
				},
				Action: func(ctx context.Context, cCtx *cli.Command) error {
					b, err := setup(ctx, configFile, cliflags)
					if err != nil {
						return err
					}
					defer b.Close()
					if cCtx.IsSet("recreate") {
						b.driver.CassandraOptions.Recreate = cCtx.Bool("recreate")
					}
					template := b.config.Cassandra.Template
					if cCtx.IsSet("template") {
						template = cCtx.String("template")
					}
					if cCtx.Bool("dry-run") {
						c, err := b.driver.Cassandra(cCtx.String("name"), cCtx.String("image"))
						if err != nil {
							return err
						}
						defer func() { _ = c.Cleanup() }()
						p, err := c.DeployPlan()
						if err != nil {
							return err
						}
						return printPlan(p, cCtx.String("format"))
					}
					logStatus := b.config.Cassandra.LogStatus && !cCtx.Bool("no-status")
					return b.driver.DeployCassandra(ctx, cCtx.String("name"), cCtx.String("image"), template, logStatus)
				},
			},
			{
				Name:  "start",
				Usage: "Start already deployed cassandra containers seeds first",
				Action: func(ctx context.Context, cCtx *cli.Command) error {
					b, err := setup(ctx, configFile, cliflags)
					if err != nil {
						return err
					}
					defer b.Close()
					c, err := b.driver.Cassandra("", "")
					if err != nil {
						return err
					}
					defer func() { _ = c.Cleanup() }()
					return c.Start(ctx)
				},
			},
			{
				Name:  "status",
				Usage: "Show cassandra container state on every node",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "nodetool",
						Aliases: []string{"n"},
						Usage:   "Also print nodetool status",
					},
				},
				Action: func(ctx context.Context, cCtx *cli.Command) error {
					b, err := setup(ctx, configFile, cliflags)
					if err != nil {
						return err
					}
					defer b.Close()
					c, err := b.driver.Cassandra("", "")
					if err != nil {
						return err
					}
					defer func() { _ = c.Cleanup() }()
					states, err := c.Status(ctx)
					if err != nil {
						return err
					}
					for _, h := range c.Hosts() {
						state := states[h.Address]
						if state == nil {
							fmt.Printf("%v: not deployed\n", h.Address)
							continue
						}
						fmt.Printf("%v: %v (%v)\n", h.Address, state.Status, state.Image)
					}
					if cCtx.Bool("nodetool") {
						out, err := c.Nodetool(ctx, "status")
						if err != nil {
							return err
						}
						fmt.Println(out)
					}
					return nil
				},
			},
			{
				Name:      "nodetool",
				Usage:     "Run nodetool on the first cassandra node",
				ArgsUsage: "[command...]",
				Action: func(ctx context.Context, cCtx *cli.Command) error {
					b, err := setup(ctx, configFile, cliflags)
					if err != nil {
						return err
					}
					defer b.Close()
					c, err := b.driver.Cassandra("", "")
					if err != nil {
						return err
					}
					defer func() { _ = c.Cleanup() }()
					out, err := c.NodetoolArgs(ctx, cCtx.Args().Slice()...)
					if err != nil {
						return err
					}
					fmt.Print(out)
					return nil
				},
			},
			{
				Name:      "du",
				Usage:     "Show disk usage inside the first cassandra node",
				ArgsUsage: "[path]",
				Action: func(ctx context.Context, cCtx *cli.Command) error {
					b, err := setup(ctx, configFile, cliflags)
					if err != nil {
						return err
					}
					defer b.Close()
					c, err := b.driver.Cassandra("", "")
					if err != nil {
						return err
					}
					defer func() { _ = c.Cleanup() }()
					path := cCtx.Args().First()
					if path == "" {
						path = cassandra.DefaultDataPath
					}
					out, err := c.Du(ctx, path)
					if err != nil {
						return err
					}
					fmt.Print(out)
					return nil
				},
			},
			{
				Name:  "nb",
				Usage: "Manage NoSQLBench clients",
				Commands: []*cli.Command{
					{
						Name:  "deploy",
						Usage: "Copy workload templates to clients and pull the image",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "name",
								Usage: "Container name",
							},
							&cli.StringFlag{
								Name:  "image",
								Usage: "NoSQLBench docker image",
							},
							&cli.BoolFlag{
								Name:    "nosync",
								Usage:   "Use the cached workload templates",
								Sources: cli.EnvVars("CASSBENCH_NOSYNC"),
							},
							&cli.BoolFlag{
								Name:  "dry-run",
								Usage: "Only show the deployment plan",
							},
						},
						Action: func(ctx context.Context, cCtx *cli.Command) error {
							b, err := setup(ctx, configFile, cliflags)
							if err != nil {
								return err
							}
							defer b.Close()
							if err := b.syncWorkload(ctx, cCtx.Bool("nosync")); err != nil {
								return err
							}
							if cCtx.Bool("dry-run") {
								nb, err := b.driver.NoSQLBench(cCtx.String("name"), cCtx.String("image"))
								if err != nil {
									return err
								}
								p, err := nb.DeployPlan()
								if err != nil {
									return err
								}
								return printPlan(p, "text")
							}
							return b.driver.DeployNB(ctx, cCtx.String("name"), cCtx.String("image"))
						},
					},
					{
						Name:      "run",
						Usage:     "Run a NoSQLBench command on every client",
						ArgsUsage: "[nb arguments...]",
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:    "sync",
								Aliases: []string{"s"},
								Usage:   "Pull results once the run finished",
							},
							&cli.StringFlag{
								Name:    "dest",
								Aliases: []string{"d"},
								Usage:   "Results directory used with --sync",
							},
							&cli.StringFlag{
								Name:    "line",
								Aliases: []string{"l"},
								Usage:   "Whole NoSQLBench command as one shell style string",
							},
						},
						Action: func(ctx context.Context, cCtx *cli.Command) error {
							var cmd *nosqlbench.Command
							var err error
							switch {
							case cCtx.IsSet("line") && cCtx.Args().Len() > 0:
								return cli.Exit("use either --line or arguments, not both", 1)
							case cCtx.IsSet("line"):
								cmd, err = nosqlbench.ParseCommand(cCtx.String("line"))
							case cCtx.Args().Len() == 0:
								return cli.Exit("specify a NoSQLBench command", 1)
							default:
								cmd, err = nosqlbench.CommandFromArgs(cCtx.Args().Slice())
							}
							if err != nil {
								return err
							}
							b, err := setup(ctx, configFile, cliflags)
							if err != nil {
								return err
							}
							defer b.Close()
							if err := b.driver.RunNB(ctx, cmd); err != nil {
								return err
							}
							if !cCtx.Bool("sync") {
								return nil
							}
							dest, err := b.driver.SyncResults(ctx, resultsDir(b, cCtx.String("dest")))
							if err != nil {
								return err
							}
							fmt.Printf("results saved to %v\n", dest)
							return nil
						},
					},
					{
						Name:  "sync",
						Usage: "Pull results from every client",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:    "dest",
								Aliases: []string{"d"},
								Usage:   "Results directory",
							},
						},
						Action: func(ctx context.Context, cCtx *cli.Command) error {
							b, err := setup(ctx, configFile, cliflags)
							if err != nil {
								return err
							}
							defer b.Close()
							dest, err := b.driver.SyncResults(ctx, resultsDir(b, cCtx.String("dest")))
							if err != nil {
								return err
							}
							fmt.Printf("results saved to %v\n", dest)
							return nil
						},
					},
				},
			},
			{
				Name:  "destroy",
				Usage: "Release the reservation",
				Action: func(ctx context.Context, cCtx *cli.Command) error {
					b, err := setup(ctx, configFile, cliflags)
					if err != nil {
						return err
					}
					defer b.Close()
					return b.driver.Destroy(ctx)
				},
			},
			{
				Name:  "version",
				Usage: "show version",
				Action: func(_ context.Context, _ *cli.Command) error {
					fmt.Printf("cassbench version %v\n", Version)
					return nil
				},
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

// resultsDir prefers the flag, then the configured directory, then a
// timestamped one.
func resultsDir(b *bench, flag string) string {
	if flag != "" {
		return flag
	}
	if b.config.NoSQLBench.Results != "" {
		return filepath.Clean(b.config.NoSQLBench.Results)
	}
	return ""
}
