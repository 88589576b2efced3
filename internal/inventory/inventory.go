package inventory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/emirpasic/gods/sets/treeset"
)

const (
	RoleHosts     = "hosts"
	RoleCassandra = "cassandra"
	RoleSeeds     = "seeds"
	RoleNotSeeds  = "not_seeds"
	RoleClients   = "clients"
)

// Host is a reserved machine. The local paths are set once when a deployment
// claims the host and read back when rendering and copying its files.
type Host struct {
	Address       string   `toml:"address" json:"address"`
	Roles         []string `toml:"roles" json:"roles"`
	LocalRootPath string   `toml:"-" json:"-"`
	LocalConfPath string   `toml:"-" json:"-"`
}

func NewHost(address string, roles ...string) *Host {
	return &Host{Address: address, Roles: roles}
}

func (h *Host) String() string {
	return h.Address
}

func (h *Host) HasRole(role string) bool {
	for _, r := range h.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Addresses returns "address:port" for each host, or the bare address when
// port is not positive.
func Addresses(hosts []*Host, port int) []string {
	result := make([]string, 0, len(hosts))
	for _, h := range hosts {
		if port > 0 {
			result = append(result, fmt.Sprintf("%v:%v", h.Address, port))
		} else {
			result = append(result, h.Address)
		}
	}
	return result
}

func JoinAddresses(hosts []*Host, port int) string {
	return strings.Join(Addresses(hosts, port), ",")
}

// Roles maps a role name to the hosts that hold it.
type Roles map[string][]*Host

func (r Roles) Get(role string) []*Host {
	return r[role]
}

func (r Roles) Names() []string {
	names := treeset.NewWithStringComparator()
	for k := range r {
		names.Add(k)
	}
	result := make([]string, 0, names.Size())
	for _, v := range names.Values() {
		result = append(result, v.(string))
	}
	return result
}

func (r Roles) Pretty() string {
	var result string
	for _, name := range r.Names() {
		result += fmt.Sprintf("%v: %v\n", name, strings.Join(Addresses(r[name], 0), " "))
	}
	return result
}

type Partition struct {
	Seeds    []*Host
	NotSeeds []*Host
	Clients  []*Host
}

// NewPartition splits addresses in order: seeds first, then non-seeds, then
// clients.
func NewPartition(addresses []string, seeds, notSeeds, clients int) (Partition, error) {
	var p Partition
	if seeds < 1 {
		return p, errors.New("need at least one seed")
	}
	if notSeeds < 0 || clients < 0 {
		return p, errors.New("host counts can't be negative")
	}
	if want := seeds + notSeeds + clients; len(addresses) < want {
		return p, fmt.Errorf("need %v hosts, got %v", want, len(addresses))
	}
	for i, addr := range addresses[:seeds+notSeeds+clients] {
		switch {
		case i < seeds:
			p.Seeds = append(p.Seeds, NewHost(addr, RoleHosts, RoleCassandra, RoleSeeds))
		case i < seeds+notSeeds:
			p.NotSeeds = append(p.NotSeeds, NewHost(addr, RoleHosts, RoleCassandra, RoleNotSeeds))
		default:
			p.Clients = append(p.Clients, NewHost(addr, RoleHosts, RoleClients))
		}
	}
	return p, p.Validate()
}

func (p Partition) Validate() error {
	if len(p.Seeds) == 0 {
		return errors.New("seed set is empty")
	}
	seen := hashset.New()
	for _, group := range [][]*Host{p.Seeds, p.NotSeeds, p.Clients} {
		for _, h := range group {
			if h == nil || h.Address == "" {
				return errors.New("host without address")
			}
			if seen.Contains(h.Address) {
				return fmt.Errorf("host %v assigned to more than one role", h.Address)
			}
			seen.Add(h.Address)
		}
	}
	return nil
}

func (p Partition) Cassandra() []*Host {
	result := make([]*Host, 0, len(p.Seeds)+len(p.NotSeeds))
	result = append(result, p.Seeds...)
	return append(result, p.NotSeeds...)
}

func (p Partition) Roles() Roles {
	all := append(p.Cassandra(), p.Clients...)
	return Roles{
		RoleHosts:     all,
		RoleCassandra: p.Cassandra(),
		RoleSeeds:     p.Seeds,
		RoleNotSeeds:  p.NotSeeds,
		RoleClients:   p.Clients,
	}
}
