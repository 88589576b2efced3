package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/g5kbench/cassbench/internal/provider"
)

// Deployment records what was last deployed on a role.
type Deployment struct {
	Name       string    `toml:"name"`
	Image      string    `toml:"image"`
	DeployedAt time.Time `toml:"deployed_at"`
}

// State is persisted between invocations so later commands find the
// reservation and containers of the current run.
type State struct {
	Reservation *provider.Reservation `toml:"reservation"`
	Cassandra   *Deployment           `toml:"cassandra,omitempty"`
	NoSQLBench  *Deployment           `toml:"nosqlbench,omitempty"`
}

func LoadState(path string) (*State, error) {
	var s State
	_, err := toml.DecodeFile(path, &s)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, provider.ErrNoReservation
	}
	if err != nil {
		return nil, fmt.Errorf("error reading state %v: %w", path, err)
	}
	if s.Reservation == nil {
		return nil, provider.ErrNoReservation
	}
	return &s, nil
}

func SaveState(path string, s *State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating state directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	if err := toml.NewEncoder(file).Encode(s); err != nil {
		return fmt.Errorf("failed to encode state to TOML: %w", err)
	}
	return nil
}
