// Package source fetches the workload template directory copied to clients.
package source

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/v2"

	"github.com/g5kbench/cassbench/internal/source/file"
	"github.com/g5kbench/cassbench/internal/source/git"
)

type Source interface {
	Sync(context.Context) error
	// Path is the local directory holding the synced templates.
	Path() string
	Clean() error
}

// NewSource picks a source implementation from the URL scheme. Plain paths
// and file:// URLs are local directories; git://, ssh:// and URLs ending in
// .git are cloned into cacheDir.
func NewSource(k *koanf.Koanf, rawURL, cacheDir string) (Source, error) {
	cfg, err := ParseSourceConfig(rawURL)
	if err != nil {
		return nil, err
	}
	switch cfg.Kind {
	case KindFile:
		return file.NewFileSource(cfg.URL, filepath.Join(cacheDir, "templates"))
	case KindGit:
		gitConfig, err := git.NewConfig(k, filepath.Join(cacheDir, "repo"), cfg.URL)
		if err != nil {
			return nil, err
		}
		return git.NewGitSource(gitConfig)
	}
	return nil, fmt.Errorf("unsupported source kind %v", cfg.Kind)
}

func ParseSourceConfig(rawURL string) (*SourceConfig, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("need source URL")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid source URL %q: %w", rawURL, err)
	}
	switch {
	case u.Scheme == "" || u.Scheme == "file":
		path := rawURL
		if u.Scheme == "file" {
			path = u.Host + u.Path
		}
		return &SourceConfig{URL: path, Kind: KindFile}, nil
	case u.Scheme == "git" || u.Scheme == "ssh" || strings.HasSuffix(u.Path, ".git"):
		return &SourceConfig{URL: rawURL, Kind: KindGit}, nil
	}
	return nil, fmt.Errorf("unsupported source URL %q", rawURL)
}
