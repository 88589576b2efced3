package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
	xssh "golang.org/x/crypto/ssh"
)

// GitSource clones a repository of workload templates, or pulls it when a
// clone already exists.
type GitSource struct {
	config   *Config
	auth     transport.AuthMethod
	Progress io.Writer
}

func NewGitSource(c *Config) (*GitSource, error) {
	if c == nil || c.URL == "" {
		return nil, errors.New("need git repository URL")
	}
	if c.LocalRepository == "" {
		return nil, errors.New("need local repository path")
	}
	g := &GitSource{config: c}
	switch {
	case c.PrivateKey != "":
		if _, err := os.Stat(c.PrivateKey); err != nil {
			return nil, err
		}
		publicKeys, err := ssh.NewPublicKeysFromFile("git", c.PrivateKey, "")
		if err != nil {
			return nil, err
		}
		if c.Insecure {
			publicKeys.HostKeyCallback = xssh.InsecureIgnoreHostKey()
		}
		g.auth = publicKeys
	case c.Username != "":
		g.auth = &http.BasicAuth{
			Username: c.Username,
			Password: c.Password,
		}
	}
	return g, nil
}

// Path is the template directory inside the clone.
func (g *GitSource) Path() string {
	return filepath.Join(g.config.LocalRepository, g.config.Subdir)
}

func (g *GitSource) Sync(ctx context.Context) error {
	options := git.CloneOptions{
		URL:      g.config.URL,
		Auth:     g.auth,
		Progress: g.Progress,
	}
	pullOptions := git.PullOptions{Auth: g.auth}
	if g.config.Branch != "" {
		options.ReferenceName = plumbing.NewBranchReferenceName(g.config.Branch)
		options.SingleBranch = true
		pullOptions.ReferenceName = options.ReferenceName
	}
	_, err := git.PlainCloneContext(ctx, g.config.LocalRepository, false, &options)
	if err != nil && !errors.Is(err, git.ErrRepositoryAlreadyExists) {
		return fmt.Errorf("error cloning %v: %w", g.config.URL, err)
	}
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		r, err := git.PlainOpen(g.config.LocalRepository)
		if err != nil {
			return err
		}
		w, err := r.Worktree()
		if err != nil {
			return err
		}
		err = w.PullContext(ctx, &pullOptions)
		if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
			return fmt.Errorf("error pulling %v: %w", g.config.URL, err)
		}
	}
	if _, err := os.Stat(g.Path()); err != nil {
		return fmt.Errorf("template directory missing from repository: %w", err)
	}
	log.Debug("templates synced", "repo", g.config.URL, "path", g.Path())
	return nil
}

func (g *GitSource) Clean() error {
	return os.RemoveAll(g.config.LocalRepository)
}
