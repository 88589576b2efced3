package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mholt/archiver/v4"
)

// archiveDir collects the contents of dir, not dir itself, so they land
// directly under the destination.
func archiveDir(dir string) ([]archiver.File, error) {
	var files []archiver.File
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		file := archiver.File{
			FileInfo:      info,
			NameInArchive: filepath.ToSlash(rel),
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			file.LinkTarget = target
		}
		if info.Mode().IsRegular() {
			file.Open = func() (io.ReadCloser, error) { return os.Open(path) }
		}
		files = append(files, file)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking %v: %w", dir, err)
	}
	return files, nil
}

// PackDir writes a tar archive of the contents of dir to w.
func PackDir(ctx context.Context, dir string, w io.Writer) error {
	files, err := archiveDir(dir)
	if err != nil {
		return err
	}
	if err := (archiver.Tar{}).Archive(ctx, w, files); err != nil {
		return fmt.Errorf("error archiving %v: %w", dir, err)
	}
	return nil
}

// UnpackDir extracts a tar stream into dir. Entries escaping dir are rejected.
func UnpackDir(ctx context.Context, r io.Reader, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	handler := func(ctx context.Context, f archiver.File) error {
		target, err := securePath(root, f.NameInArchive)
		if err != nil {
			return err
		}
		switch {
		case f.IsDir():
			return os.MkdirAll(target, 0o755)
		case f.LinkTarget != "":
			log.Debug("skipping link in archive", "name", f.NameInArchive)
			return nil
		case !f.Mode().IsRegular():
			return nil
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		src, err := f.Open()
		if err != nil {
			return err
		}
		defer src.Close()
		dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, f.Mode().Perm()|0o600)
		if err != nil {
			return err
		}
		if _, err := io.Copy(dst, src); err != nil {
			_ = dst.Close()
			return err
		}
		return dst.Close()
	}
	if err := (archiver.Tar{}).Extract(ctx, r, nil, handler); err != nil {
		return fmt.Errorf("error extracting into %v: %w", dir, err)
	}
	return nil
}

func securePath(root, name string) (string, error) {
	target := filepath.Join(root, filepath.FromSlash(name))
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes %v", name, root)
	}
	return target, nil
}

// Upload copies the contents of localDir into remoteDir on the host.
func (c *SSHClient) Upload(ctx context.Context, localDir, remoteDir string) error {
	var buf bytes.Buffer
	if err := PackDir(ctx, localDir, &buf); err != nil {
		return err
	}
	log.Debug("upload", "host", c.host, "src", localDir, "dest", remoteDir, "bytes", buf.Len())
	cmd := fmt.Sprintf("mkdir -p %v && tar -xf - -C %v", shellQuote(remoteDir), shellQuote(remoteDir))
	if _, err := c.RunWithInput(ctx, cmd, &buf); err != nil {
		return fmt.Errorf("error uploading %v to %v:%v: %w", localDir, c.host, remoteDir, err)
	}
	return nil
}

// Download copies the contents of remoteDir on the host into localDir.
func (c *SSHClient) Download(ctx context.Context, remoteDir, localDir string) error {
	pr, pw := io.Pipe()
	errCh := make(chan error, 1)
	go func() {
		err := c.RunWithOutput(ctx, fmt.Sprintf("tar -C %v -cf - .", shellQuote(remoteDir)), pw)
		_ = pw.CloseWithError(err)
		errCh <- err
	}()
	unpackErr := UnpackDir(ctx, pr, localDir)
	_ = pr.Close()
	if err := <-errCh; err != nil {
		return fmt.Errorf("error downloading %v:%v: %w", c.host, remoteDir, err)
	}
	if unpackErr != nil {
		return unpackErr
	}
	log.Debug("download", "host", c.host, "src", remoteDir, "dest", localDir)
	return nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
