package source

import (
	"errors"
	"fmt"
)

const (
	KindFile = "file"
	KindGit  = "git"
)

type SourceConfig struct {
	URL  string `toml:"url" json:"url" yaml:"url"`
	Kind string `toml:"kind" json:"kind" yaml:"kind"`
}

func (c SourceConfig) String() string {
	return fmt.Sprintf("%v source at %v", c.Kind, c.URL)
}

func (c SourceConfig) Validate() error {
	if c.URL == "" {
		return errors.New("need source URL")
	}
	if c.Kind != KindFile && c.Kind != KindGit {
		return fmt.Errorf("unknown source kind %v", c.Kind)
	}
	return nil
}
