package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/v2"
	"golang.org/x/crypto/ssh"
)

const (
	DefaultUser           = "root"
	DefaultPort           = 22
	defaultDialTimeout    = 10 * time.Second
	defaultConnectRetries = 10
	defaultRetryDelay     = 2 * time.Second
	defaultMaxRetryDelay  = 15 * time.Second
)

type SSHConfig struct {
	User    string
	Port    int
	KeyFile string

	DialTimeout    time.Duration
	ConnectRetries int
	RetryDelay     time.Duration

	// nil accepts any host key; reservations hand out freshly deployed nodes
	HostKeyCallback ssh.HostKeyCallback
}

func NewSSHConfig(k *koanf.Koanf) (*SSHConfig, error) {
	var c SSHConfig
	c.User = k.String("user")
	c.Port = k.Int("port")
	c.KeyFile = k.String("key")
	c.DialTimeout = k.Duration("dial_timeout")
	c.ConnectRetries = k.Int("retries")
	c.RetryDelay = k.Duration("retry_delay")
	if c.Port < 0 || c.Port > 65535 {
		return nil, fmt.Errorf("invalid ssh port %v", c.Port)
	}
	return &c, nil
}

func (c SSHConfig) withDefaults() SSHConfig {
	if c.User == "" {
		c.User = DefaultUser
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.KeyFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.KeyFile = filepath.Join(home, ".ssh", "id_rsa")
		}
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = defaultDialTimeout
	}
	if c.ConnectRetries == 0 {
		c.ConnectRetries = defaultConnectRetries
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = defaultRetryDelay
	}
	if c.HostKeyCallback == nil {
		c.HostKeyCallback = ssh.InsecureIgnoreHostKey() //nolint:gosec
	}
	return c
}

func (c SSHConfig) String() string {
	return fmt.Sprintf("User: %v\nPort: %v\nKey: %v\nRetries: %v\n", c.User, c.Port, c.KeyFile, c.ConnectRetries)
}

// SSHClient holds one connection to a host. Sessions are opened per command.
type SSHClient struct {
	host   string
	conn   *ssh.Client
	config SSHConfig
}

func loadSigner(keyFile string) (ssh.Signer, error) {
	key, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("error reading ssh key: %w", err)
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("error parsing ssh key %v: %w", keyFile, err)
	}
	return signer, nil
}

// Dial connects to host, retrying with exponential backoff while the node
// finishes booting.
func Dial(ctx context.Context, host string, cfg SSHConfig) (*SSHClient, error) {
	cfg = cfg.withDefaults()
	signer, err := loadSigner(cfg.KeyFile)
	if err != nil {
		return nil, err
	}
	clientConfig := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: cfg.HostKeyCallback,
		Timeout:         cfg.DialTimeout,
	}
	addr := net.JoinHostPort(host, fmt.Sprint(cfg.Port))

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = cfg.RetryDelay
	policy.MaxInterval = defaultMaxRetryDelay
	policy.MaxElapsedTime = 0

	var conn *ssh.Client
	attempt := 0
	err = backoff.Retry(func() error {
		attempt++
		dialer := &net.Dialer{Timeout: cfg.DialTimeout}
		raw, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			log.Debug("ssh dial failed", "host", host, "attempt", attempt, "err", err)
			return err
		}
		c, chans, reqs, err := ssh.NewClientConn(raw, addr, clientConfig)
		if err != nil {
			_ = raw.Close()
			log.Debug("ssh handshake failed", "host", host, "attempt", attempt, "err", err)
			return err
		}
		conn = ssh.NewClient(c, chans, reqs)
		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(cfg.ConnectRetries)), ctx))
	if err != nil {
		return nil, fmt.Errorf("error connecting to %v after %v attempts: %w", addr, attempt, err)
	}
	return &SSHClient{host: host, conn: conn, config: cfg}, nil
}

func (c *SSHClient) Host() string {
	return c.host
}

// CommandError carries the output of a failed remote command.
type CommandError struct {
	Host    string
	Command string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%v: %q failed: %v", e.Host, e.Command, e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Run executes command and returns its stdout.
func (c *SSHClient) Run(ctx context.Context, command string) (string, error) {
	var stdout bytes.Buffer
	if err := c.stream(ctx, command, nil, &stdout); err != nil {
		return stdout.String(), err
	}
	return stdout.String(), nil
}

// RunWithInput executes command with stdin fed from input.
func (c *SSHClient) RunWithInput(ctx context.Context, command string, input io.Reader) (string, error) {
	var stdout bytes.Buffer
	if err := c.stream(ctx, command, input, &stdout); err != nil {
		return stdout.String(), err
	}
	return stdout.String(), nil
}

// RunWithOutput executes command, writing stdout to out as it arrives.
func (c *SSHClient) RunWithOutput(ctx context.Context, command string, out io.Writer) error {
	return c.stream(ctx, command, nil, out)
}

func (c *SSHClient) stream(ctx context.Context, command string, in io.Reader, out io.Writer) error {
	session, err := c.conn.NewSession()
	if err != nil {
		return fmt.Errorf("error opening session on %v: %w", c.host, err)
	}
	defer func() { _ = session.Close() }()

	var stderr bytes.Buffer
	session.Stdin = in
	session.Stdout = out
	session.Stderr = &stderr

	log.Debug("ssh", "host", c.host, "cmd", command)
	done := make(chan error, 1)
	go func() { done <- session.Run(command) }()
	select {
	case <-ctx.Done():
		_ = session.Signal(ssh.SIGKILL)
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return &CommandError{Host: c.host, Command: command, Stderr: stderr.String(), Err: err}
		}
		return nil
	}
}

// DialContext opens a connection from the remote host, used to reach the
// docker socket.
func (c *SSHClient) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	conn, err := c.conn.DialContext(ctx, network, addr)
	if err != nil {
		return nil, fmt.Errorf("error forwarding %v %v on %v: %w", network, addr, c.host, err)
	}
	return conn, nil
}

func (c *SSHClient) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}
