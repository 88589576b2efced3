// Package provider reserves the hosts a benchmark runs on.
package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/g5kbench/cassbench/internal/inventory"
)

var ErrNoReservation = errors.New("no reservation")

const DefaultJobType = "allow_classic_ssh"

type Provider interface {
	Name() string
	Reserve(context.Context, Request) (*Reservation, error)
	Destroy(context.Context, *Reservation) error
}

// Request describes the hosts wanted. NodeCount counts Cassandra nodes, seeds
// included; clients come on top of it.
type Request struct {
	Site        string
	Cluster     string
	Reservation string
	Walltime    string
	JobName     string
	NodeCount   int
	SeedCount   int
	ClientCount int
	JobTypes    []string
}

func (r Request) Validate() error {
	if r.SeedCount < 1 {
		return errors.New("need at least one seed")
	}
	if r.SeedCount > r.NodeCount {
		return fmt.Errorf("seed count %v exceeds node count %v", r.SeedCount, r.NodeCount)
	}
	if r.ClientCount < 0 {
		return errors.New("client count can't be negative")
	}
	return nil
}

func (r Request) NotSeedCount() int {
	return r.NodeCount - r.SeedCount
}

func (r Request) Total() int {
	return r.NodeCount + r.ClientCount
}

func (r Request) String() string {
	var result string
	result += fmt.Sprintf("Site: %v\n", r.Site)
	result += fmt.Sprintf("Cluster: %v\n", r.Cluster)
	result += fmt.Sprintf("Walltime: %v\n", r.Walltime)
	result += fmt.Sprintf("Reservation: %v\n", r.Reservation)
	result += fmt.Sprintf("Job name: %v\n", r.JobName)
	result += fmt.Sprintf("Nodes: %v (seeds: %v)\n", r.NodeCount, r.SeedCount)
	result += fmt.Sprintf("Clients: %v\n", r.ClientCount)
	return result
}

// Partition splits addresses in order into seeds, non-seeds and clients.
func (r Request) Partition(addresses []string) (inventory.Partition, error) {
	return inventory.NewPartition(addresses, r.SeedCount, r.NotSeedCount(), r.ClientCount)
}

// Reservation is what a provider handed out. It is stored in the run state so
// the hosts can be found and released later.
type Reservation struct {
	Provider  string    `toml:"provider"`
	Site      string    `toml:"site,omitempty"`
	JobID     int       `toml:"job_id,omitempty"`
	CreatedAt time.Time `toml:"created_at"`
	Seeds     []string  `toml:"seeds"`
	NotSeeds  []string  `toml:"not_seeds"`
	Clients   []string  `toml:"clients"`
}

func NewReservation(providerName string, p inventory.Partition) *Reservation {
	return &Reservation{
		Provider:  providerName,
		CreatedAt: time.Now().UTC(),
		Seeds:     inventory.Addresses(p.Seeds, 0),
		NotSeeds:  inventory.Addresses(p.NotSeeds, 0),
		Clients:   inventory.Addresses(p.Clients, 0),
	}
}

func (r *Reservation) Partition() (inventory.Partition, error) {
	if r == nil {
		return inventory.Partition{}, ErrNoReservation
	}
	all := make([]string, 0, len(r.Seeds)+len(r.NotSeeds)+len(r.Clients))
	all = append(all, r.Seeds...)
	all = append(all, r.NotSeeds...)
	all = append(all, r.Clients...)
	return inventory.NewPartition(all, len(r.Seeds), len(r.NotSeeds), len(r.Clients))
}

func (r *Reservation) Roles() (inventory.Roles, error) {
	p, err := r.Partition()
	if err != nil {
		return nil, err
	}
	return p.Roles(), nil
}
