package attributes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_VaultLookup(t *testing.T) {
	tests := []struct {
		name   string
		input  AttributeVault
		filter AttributesFilter
		want   map[string]any
	}{
		{
			name: "test-host",
			input: AttributeVault{
				Hosts: map[string]map[string]any{
					"gros-1": {"key": "value"},
				},
			},
			filter: AttributesFilter{Hostname: "gros-1"},
			want:   map[string]any{"key": "value"},
		},
		{
			name: "test-role-override-global",
			input: AttributeVault{
				Globals: map[string]any{"key": "wrong-value", "other": 1},
				Roles: map[string]map[string]any{
					"seeds": {"key": "value"},
				},
			},
			filter: AttributesFilter{Roles: []string{"seeds"}},
			want:   map[string]any{"key": "value", "other": 1},
		},
		{
			name: "test-host-override-role",
			input: AttributeVault{
				Hosts: map[string]map[string]any{
					"gros-1": {"key": "value"},
				},
				Roles: map[string]map[string]any{
					"seeds": {"key": "wrong-value"},
				},
			},
			filter: AttributesFilter{Hostname: "gros-1", Roles: []string{"seeds"}},
			want:   map[string]any{"key": "value"},
		},
		{
			name: "test-later-role-wins",
			input: AttributeVault{
				Roles: map[string]map[string]any{
					"cassandra": {"key": "wrong-value"},
					"seeds":     {"key": "value"},
				},
			},
			filter: AttributesFilter{Roles: []string{"cassandra", "seeds"}},
			want:   map[string]any{"key": "value"},
		},
		{
			name: "test-nested-merge",
			input: AttributeVault{
				Globals: map[string]any{
					"commitlog_sync_period": map[string]any{"a": 1, "b": 2},
				},
				Hosts: map[string]map[string]any{
					"gros-1": {"commitlog_sync_period": map[string]any{"b": 3}},
				},
			},
			filter: AttributesFilter{Hostname: "gros-1"},
			want: map[string]any{
				"commitlog_sync_period": map[string]any{"a": 1, "b": 3},
			},
		},
		{
			name:   "test-unknown-host",
			input:  AttributeVault{},
			filter: AttributesFilter{Hostname: "nobody"},
			want:   map[string]any{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.input.Lookup(tt.filter))
		})
	}
}

func Test_NilVault(t *testing.T) {
	var v *AttributeVault
	assert.Equal(t, map[string]any{}, v.Lookup(AttributesFilter{Hostname: "x"}))
}

func Test_LoadVault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attributes.toml")
	content := `
[globals]
concurrent_writes = 64

[roles.seeds]
concurrent_reads = 16

[hosts."gros-1.nancy.grid5000.fr"]
num_tokens = 8
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	v, err := LoadVault(path)
	require.NoError(t, err)
	got := v.Lookup(AttributesFilter{Hostname: "gros-1.nancy.grid5000.fr", Roles: []string{"seeds"}})
	assert.Equal(t, map[string]any{
		"concurrent_writes": int64(64),
		"concurrent_reads":  int64(16),
		"num_tokens":        int64(8),
	}, got)
}
