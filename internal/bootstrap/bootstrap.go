// Package bootstrap starts cluster nodes one at a time, seeds first.
//
// Nodes of a gossip cluster that bootstrap simultaneously can collide while
// claiming token ranges, so every start is followed by a fixed spawn delay
// before the next node is touched. The delay is a liveness heuristic only;
// nothing checks that the node actually serves requests afterwards.
package bootstrap

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/charmbracelet/log"

	"github.com/g5kbench/cassbench/internal/inventory"
)

const DefaultSpawnDelay = 120 * time.Second

type State int

const (
	StateNotStarted State = iota
	StateStarting
	StateStarted
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateStarting:
		return "starting"
	case StateStarted:
		return "started"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type Starter interface {
	StartHost(ctx context.Context, host *inventory.Host) error
}

type StarterFunc func(ctx context.Context, host *inventory.Host) error

func (f StarterFunc) StartHost(ctx context.Context, host *inventory.Host) error {
	return f(ctx, host)
}

type Sequencer struct {
	Starter    Starter
	SpawnDelay time.Duration
	// Sleep waits out the spawn delay. Defaults to a context aware timer.
	Sleep func(ctx context.Context, d time.Duration) error

	states map[string]State
}

func NewSequencer(starter Starter, spawnDelay time.Duration) *Sequencer {
	return &Sequencer{
		Starter:    starter,
		SpawnDelay: spawnDelay,
		Sleep:      Sleep,
		states:     make(map[string]State),
	}
}

// StartHost starts a single host and waits the spawn delay.
func (s *Sequencer) StartHost(ctx context.Context, host *inventory.Host) error {
	if s.states == nil {
		s.states = make(map[string]State)
	}
	if s.Sleep == nil {
		s.Sleep = Sleep
	}
	log.Info("starting host", "host", host.Address)
	s.states[host.Address] = StateStarting
	if err := s.Starter.StartHost(ctx, host); err != nil {
		return fmt.Errorf("error starting %v: %w", host.Address, err)
	}
	log.Debug("waiting for host to spawn", "host", host.Address, "delay", s.SpawnDelay)
	if err := s.Sleep(ctx, s.SpawnDelay); err != nil {
		return fmt.Errorf("interrupted while waiting for %v: %w", host.Address, err)
	}
	s.states[host.Address] = StateStarted
	log.Info("host is up and running", "host", host.Address)
	return nil
}

// StartCluster starts every seed, then every other host, in list order. The
// first failure aborts the sequence.
func (s *Sequencer) StartCluster(ctx context.Context, seeds, others []*inventory.Host) error {
	if s.states == nil {
		s.states = make(map[string]State)
	}
	for _, h := range append(append([]*inventory.Host{}, seeds...), others...) {
		if _, ok := s.states[h.Address]; !ok {
			s.states[h.Address] = StateNotStarted
		}
	}
	for _, h := range seeds {
		if err := s.StartHost(ctx, h); err != nil {
			return err
		}
	}
	for _, h := range others {
		if err := s.StartHost(ctx, h); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sequencer) State(address string) State {
	return s.states[address]
}

func (s *Sequencer) States() map[string]State {
	return maps.Clone(s.states)
}

func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
