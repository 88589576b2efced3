package static

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/g5kbench/cassbench/internal/provider"
)

func TestReserve(t *testing.T) {
	p, err := New(&Config{Hosts: []string{"10.0.0.3", "10.0.0.1", "10.0.0.2", "10.0.0.9"}})
	require.NoError(t, err)

	r, err := p.Reserve(context.Background(), provider.Request{NodeCount: 2, SeedCount: 1, ClientCount: 1})
	require.NoError(t, err)
	assert.Equal(t, Name, r.Provider)
	assert.Equal(t, []string{"10.0.0.3"}, r.Seeds)
	assert.Equal(t, []string{"10.0.0.1"}, r.NotSeeds)
	assert.Equal(t, []string{"10.0.0.2"}, r.Clients)

	require.NoError(t, p.Destroy(context.Background(), r))
	assert.ErrorIs(t, p.Destroy(context.Background(), nil), provider.ErrNoReservation)
}

func TestReserveTooFewHosts(t *testing.T) {
	p, err := New(&Config{Hosts: []string{"a", "b"}})
	require.NoError(t, err)
	_, err = p.Reserve(context.Background(), provider.Request{NodeCount: 2, SeedCount: 1, ClientCount: 1})
	assert.ErrorContains(t, err, "needs 3 hosts")
}

func TestNewNeedsHosts(t *testing.T) {
	_, err := New(&Config{})
	assert.Error(t, err)
	_, err = New(nil)
	assert.Error(t, err)
}
