package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/g5kbench/cassbench/internal/actions"
	"github.com/g5kbench/cassbench/internal/containers"
)

func TestDirectoryValidator(t *testing.T) {
	tests := []struct {
		name    string
		steps   []actions.Action
		wantErr bool
	}{
		{
			name:  "upload into created dir",
			steps: []actions.Action{actions.MakeDir("/root/cassandra"), actions.Upload("tmp/", "/root/cassandra")},
		},
		{
			name:  "upload into subdirectory",
			steps: []actions.Action{actions.MakeDir("/root/nosqlbench/"), actions.Upload("nb/", "/root/nosqlbench/conf")},
		},
		{
			name:    "upload without mkdir",
			steps:   []actions.Action{actions.Upload("tmp/", "/root/cassandra")},
			wantErr: true,
		},
		{
			name:    "sibling prefix is not a parent",
			steps:   []actions.Action{actions.MakeDir("/root/cass"), actions.Upload("tmp/", "/root/cassandra")},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&DirectoryValidator{}).Validate(tt.steps)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestContainerLifecycleValidator(t *testing.T) {
	c := &containers.Container{Name: "cassandra", Image: "cassandra:4.1"}

	p := NewPlan("restart")
	require.NoError(t, p.Append(actions.StartContainer("cassandra"), actions.RemoveContainer("cassandra")))
	err := NewDefaultValidationPipeline().Validate(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "restart")

	p = NewPlan("recreate")
	require.NoError(t, p.Append(actions.RemoveContainer("cassandra"), actions.EnsureContainer(c), actions.StartContainer("cassandra")))
	assert.NoError(t, NewDefaultValidationPipeline().Validate(p))
}
