package file

import (
	"errors"
)

type Config struct {
	SourcePath  string
	Destination string
}

func (c Config) Validate() error {
	if c.SourcePath == "" {
		return errors.New("need file source path")
	}
	if c.Destination == "" {
		return errors.New("need file source destination")
	}
	return nil
}
