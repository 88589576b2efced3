package nosqlbench

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/shlex"
)

// Command is a NoSQLBench command line built token by token.
type Command struct {
	tokens []string
}

func NewCommand() *Command {
	return &Command{}
}

func NewRunCommand() *Command {
	return &Command{tokens: []string{"run"}}
}

// RunCommandFromOptions returns "run" followed by opts as key=value tokens.
func RunCommandFromOptions(opts map[string]any) *Command {
	return NewRunCommand().Options(opts)
}

// CommandFromArgs uses args as tokens unchanged, for arguments a shell has
// already split.
func CommandFromArgs(args []string) (*Command, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	return &Command{tokens: slices.Clone(args)}, nil
}

// ParseCommand splits a shell style command line into tokens.
func ParseCommand(line string) (*Command, error) {
	tokens, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("error parsing command %q: %w", line, err)
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	return &Command{tokens: tokens}, nil
}

func (c *Command) Option(key string, value any) *Command {
	c.tokens = append(c.tokens, fmt.Sprintf("%v=%v", key, value))
	return c
}

// Options appends every entry of opts, sorted by key.
func (c *Command) Options(opts map[string]any) *Command {
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		c.Option(k, opts[k])
	}
	return c
}

func (c *Command) Arg(name string, value any) *Command {
	c.tokens = append(c.tokens, name, fmt.Sprint(value))
	return c
}

func (c *Command) LogsDir(value any) *Command         { return c.Arg("--logs-dir", value) }
func (c *Command) LogsMax(value any) *Command         { return c.Arg("--logs-max", value) }
func (c *Command) LogsLevel(value any) *Command       { return c.Arg("--logs-level", value) }
func (c *Command) ReportCSVTo(value any) *Command     { return c.Arg("--report-csv-to", value) }
func (c *Command) ReportInterval(value any) *Command  { return c.Arg("--report-interval", value) }
func (c *Command) LogHistograms(value any) *Command   { return c.Arg("--log-histograms", value) }
func (c *Command) LogHistostats(value any) *Command   { return c.Arg("--log-histostats", value) }
func (c *Command) ReportSummaryTo(value any) *Command { return c.Arg("--report-summary-to", value) }

func (c *Command) Tokens() []string {
	return slices.Clone(c.tokens)
}

func (c *Command) String() string {
	return strings.Join(c.tokens, " ")
}
