// Package static hands out a fixed list of already available hosts.
package static

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/v2"

	"github.com/g5kbench/cassbench/internal/provider"
)

const Name = "static"

type Config struct {
	Hosts []string
}

func NewConfig(k *koanf.Koanf) (*Config, error) {
	var c Config
	c.Hosts = k.Strings("hosts")
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil || len(c.Hosts) == 0 {
		return errors.New("static provider needs hosts")
	}
	return nil
}

type Provider struct {
	hosts []string
}

func New(cfg *Config) (*Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Provider{hosts: cfg.Hosts}, nil
}

func (p *Provider) Name() string {
	return Name
}

// Reserve partitions the configured hosts in the order they are listed.
func (p *Provider) Reserve(_ context.Context, req provider.Request) (*provider.Reservation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if len(p.hosts) < req.Total() {
		return nil, fmt.Errorf("request needs %v hosts but only %v are configured", req.Total(), len(p.hosts))
	}
	partition, err := req.Partition(p.hosts)
	if err != nil {
		return nil, err
	}
	log.Info("using static hosts", "hosts", req.Total())
	return provider.NewReservation(Name, partition), nil
}

func (p *Provider) Destroy(_ context.Context, r *provider.Reservation) error {
	if r == nil {
		return provider.ErrNoReservation
	}
	log.Debug("nothing to release for static hosts")
	return nil
}
