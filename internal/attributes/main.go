// Package attributes resolves layered cassandra.yaml overrides.
//
// A vault holds values at three levels. For a given host the levels are
// merged globals first, then each of the host's roles in order, then the
// host itself, so host keys override role keys override global keys.
package attributes

import (
	"fmt"
	"maps"
	"os"

	"github.com/BurntSushi/toml"
)

type AttributesFilter struct {
	Hostname string
	Roles    []string
}

type AttributeVault struct {
	Globals map[string]any            `toml:"globals" koanf:"globals"`
	Roles   map[string]map[string]any `toml:"roles" koanf:"roles"`
	Hosts   map[string]map[string]any `toml:"hosts" koanf:"hosts"`
}

func LoadVault(path string) (*AttributeVault, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading attribute vault: %w", err)
	}
	var v AttributeVault
	if err := toml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("error parsing attribute vault %v: %w", path, err)
	}
	return &v, nil
}

// MergeAttributes copies keys from lower into higher unless higher already
// has them. Nested maps are merged recursively.
func MergeAttributes(higher map[string]any, lower map[string]any) map[string]any {
	for k, v := range lower {
		cur, ok := higher[k]
		if !ok {
			higher[k] = v
			continue
		}
		curMap, curIsMap := cur.(map[string]any)
		lowMap, lowIsMap := v.(map[string]any)
		if curIsMap && lowIsMap {
			higher[k] = MergeAttributes(maps.Clone(curMap), lowMap)
		}
	}
	return higher
}

func (v *AttributeVault) Lookup(f AttributesFilter) map[string]any {
	result := map[string]any{}
	if v == nil {
		return result
	}
	if f.Hostname != "" {
		result = MergeAttributes(result, v.Hosts[f.Hostname])
	}
	for i := len(f.Roles) - 1; i >= 0; i-- {
		result = MergeAttributes(result, v.Roles[f.Roles[i]])
	}
	return MergeAttributes(result, v.Globals)
}
