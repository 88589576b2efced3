package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/g5kbench/cassbench/internal/actions"
	"github.com/g5kbench/cassbench/internal/containers"
)

func TestPlanOrdersByPriority(t *testing.T) {
	p := NewPlan("cassandra")
	require.NoError(t, p.Append(
		actions.EnsureContainer(&containers.Container{Name: "cassandra", Image: "cassandra:4.1"}),
		actions.Shell("swapoff --all"),
		actions.Sysctl("vm.max_map_count", "1048575"),
		actions.Upload("tmp/a/", "/root/cassandra"),
		actions.MakeDir("/root/cassandra"),
	))
	var todo []actions.ActionType
	for _, s := range p.Steps() {
		todo = append(todo, s.Todo)
	}
	assert.Equal(t, []actions.ActionType{
		actions.ActionMakeDir,
		actions.ActionUpload,
		actions.ActionShell,
		actions.ActionSysctl,
		actions.ActionEnsureContainer,
	}, todo)
	assert.Equal(t, 5, p.Size())
}

func TestPlanManualPriority(t *testing.T) {
	p := NewPlan("custom")
	late := actions.MakeDir("/late")
	late.Priority = 10
	require.NoError(t, p.Add(late))
	require.NoError(t, p.Add(actions.Shell("echo first")))
	steps := p.Steps()
	assert.Equal(t, actions.ActionShell, steps[0].Todo)
	assert.Equal(t, "/late", steps[1].Path)
}

func TestPlanRejectsInvalid(t *testing.T) {
	p := NewPlan("bad")
	assert.Error(t, p.Add(actions.Action{}))
	assert.Error(t, p.Add(actions.Shell("")))
	assert.Error(t, p.Add(actions.EnsureContainer(&containers.Container{Name: "x"})))
	assert.True(t, p.Empty())
}

func TestPlanPretty(t *testing.T) {
	p := NewPlan("nosqlbench")
	assert.Equal(t, "Nothing to do", p.Pretty())
	require.NoError(t, p.Append(actions.MakeDir("/root/nosqlbench"), actions.PullImage("nosqlbench/nosqlbench")))
	assert.Equal(t, "Plan nosqlbench: \n1. MakeDir /root/nosqlbench\n2. PullImage nosqlbench/nosqlbench\n", p.Pretty())
	assert.Equal(t, []string{"1. MakeDir /root/nosqlbench", "2. PullImage nosqlbench/nosqlbench"}, p.PrettyLines())

	out, err := p.ToJson()
	require.NoError(t, err)
	assert.Contains(t, string(out), `"Todo":"PullImage"`)
}
