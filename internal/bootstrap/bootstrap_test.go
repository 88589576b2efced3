package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/g5kbench/cassbench/internal/inventory"
)

type recorder struct {
	events []string
	failOn string
}

func (r *recorder) StartHost(_ context.Context, h *inventory.Host) error {
	r.events = append(r.events, "start:"+h.Address)
	if h.Address == r.failOn {
		return errors.New("container start failed")
	}
	r.events = append(r.events, "started:"+h.Address)
	return nil
}

func (r *recorder) sleep(_ context.Context, d time.Duration) error {
	r.events = append(r.events, "wait:"+d.String())
	return nil
}

func hosts(addrs ...string) []*inventory.Host {
	result := make([]*inventory.Host, 0, len(addrs))
	for _, a := range addrs {
		result = append(result, inventory.NewHost(a))
	}
	return result
}

func TestStartClusterOrder(t *testing.T) {
	rec := &recorder{}
	s := NewSequencer(rec, DefaultSpawnDelay)
	s.Sleep = rec.sleep

	require.NoError(t, s.StartCluster(context.Background(), hosts("A", "B"), hosts("C")))
	assert.Equal(t, []string{
		"start:A", "started:A", "wait:2m0s",
		"start:B", "started:B", "wait:2m0s",
		"start:C", "started:C", "wait:2m0s",
	}, rec.events)
	for _, a := range []string{"A", "B", "C"} {
		assert.Equal(t, StateStarted, s.State(a))
	}
}

func TestStartClusterNoOthers(t *testing.T) {
	rec := &recorder{}
	s := NewSequencer(rec, time.Second)
	s.Sleep = rec.sleep
	require.NoError(t, s.StartCluster(context.Background(), hosts("A"), nil))
	assert.Equal(t, []string{"start:A", "started:A", "wait:1s"}, rec.events)
}

func TestStartClusterAbortsOnFailure(t *testing.T) {
	rec := &recorder{failOn: "B"}
	s := NewSequencer(rec, time.Minute)
	s.Sleep = rec.sleep

	err := s.StartCluster(context.Background(), hosts("A", "B"), hosts("C"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "B")
	assert.Equal(t, []string{"start:A", "started:A", "wait:1m0s", "start:B"}, rec.events)
	assert.Equal(t, map[string]State{
		"A": StateStarted,
		"B": StateStarting,
		"C": StateNotStarted,
	}, s.States())
}

func TestStartHostCancelledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewSequencer(StarterFunc(func(context.Context, *inventory.Host) error {
		cancel()
		return nil
	}), time.Hour)

	err := s.StartHost(ctx, inventory.NewHost("A"))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateStarting, s.State("A"))
}

func TestSleep(t *testing.T) {
	assert.NoError(t, Sleep(context.Background(), time.Millisecond))
	assert.NoError(t, Sleep(context.Background(), 0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "not-started", StateNotStarted.String())
	assert.Equal(t, "starting", StateStarting.String())
	assert.Equal(t, "started", StateStarted.String())
}
