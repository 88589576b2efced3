package g5k

import (
	"errors"
	"fmt"
	"time"

	"github.com/knadh/koanf/v2"
)

type Config struct {
	URL          string
	User         string
	Password     string
	Command      string
	PollInterval time.Duration
	Timeout      time.Duration
}

func NewConfig(k *koanf.Koanf) (*Config, error) {
	var c Config
	c.URL = k.String("url")
	c.User = k.String("user")
	c.Password = k.String("password")
	c.Command = k.String("command")
	c.PollInterval = k.Duration("poll_interval")
	c.Timeout = k.Duration("timeout")
	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.URL == "" {
		c.URL = DefaultURL
	}
	if c.Command == "" {
		c.Command = defaultCommand
	}
	if c.PollInterval == 0 {
		c.PollInterval = defaultPoll
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("no grid5000 config")
	}
	c.applyDefaults()
	if c.Password != "" && c.User == "" {
		return errors.New("grid5000 password set without user")
	}
	if c.PollInterval < 0 || c.Timeout < 0 {
		return errors.New("grid5000 intervals can't be negative")
	}
	return nil
}

func (c *Config) String() string {
	var result string
	result += fmt.Sprintf("API: %v\n", c.URL)
	result += fmt.Sprintf("User: %v\n", c.User)
	result += fmt.Sprintf("Poll interval: %v\n", c.PollInterval)
	result += fmt.Sprintf("Timeout: %v\n", c.Timeout)
	return result
}
