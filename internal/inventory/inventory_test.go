package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddresses(t *testing.T) {
	hosts := []*Host{NewHost("10.0.0.1"), NewHost("10.0.0.2")}
	assert.Equal(t, "10.0.0.1:7000,10.0.0.2:7000", JoinAddresses(hosts, 7000))
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, Addresses(hosts, 0))
	assert.Equal(t, "", JoinAddresses(nil, 7000))
}

func TestNewPartition(t *testing.T) {
	addrs := []string{"gros-1", "gros-2", "gros-3", "gros-4", "gros-5"}
	p, err := NewPartition(addrs, 1, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"gros-1"}, Addresses(p.Seeds, 0))
	assert.Equal(t, []string{"gros-2", "gros-3"}, Addresses(p.NotSeeds, 0))
	assert.Equal(t, []string{"gros-4"}, Addresses(p.Clients, 0))
	assert.True(t, p.Seeds[0].HasRole(RoleSeeds))
	assert.True(t, p.Seeds[0].HasRole(RoleCassandra))
	assert.False(t, p.Clients[0].HasRole(RoleCassandra))

	roles := p.Roles()
	assert.Equal(t, []string{"gros-1", "gros-2", "gros-3", "gros-4"}, Addresses(roles[RoleHosts], 0))
	assert.Equal(t, []string{"gros-1", "gros-2", "gros-3"}, Addresses(roles[RoleCassandra], 0))
	assert.Equal(t, []string{RoleCassandra, RoleClients, RoleHosts, RoleNotSeeds, RoleSeeds}, roles.Names())
}

func TestNewPartitionErrors(t *testing.T) {
	_, err := NewPartition([]string{"a"}, 0, 1, 0)
	assert.Error(t, err)
	_, err = NewPartition([]string{"a"}, 1, 1, 0)
	assert.Error(t, err)
	_, err = NewPartition([]string{"a", "a"}, 1, 1, 0)
	assert.ErrorContains(t, err, "more than one role")
}
