package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// FileSource copies a local template directory into a staging directory.
type FileSource struct {
	config Config
}

func NewFileSource(sourcePath, destination string) (*FileSource, error) {
	c := Config{SourcePath: sourcePath, Destination: destination}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &FileSource{config: c}, nil
}

func (f *FileSource) Path() string {
	return f.config.Destination
}

func (f *FileSource) Clean() error {
	return os.RemoveAll(f.config.Destination)
}

func (f *FileSource) Sync(_ context.Context) error {
	info, err := os.Stat(f.config.SourcePath)
	if err != nil {
		return fmt.Errorf("source %v: %w", f.config.SourcePath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source %v is not a directory", f.config.SourcePath)
	}
	if err := os.RemoveAll(f.config.Destination); err != nil {
		return fmt.Errorf("error syncing filesystem: can't clear path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.config.Destination), 0o755); err != nil {
		return err
	}
	if err := os.CopyFS(f.config.Destination, os.DirFS(f.config.SourcePath)); err != nil {
		return fmt.Errorf("error syncing filesystem: can't copy fs: %w", err)
	}
	log.Debug("templates synced", "src", f.config.SourcePath, "dest", f.config.Destination)
	return nil
}
