package fsys

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Local serves an FS from a directory of the host filesystem. The virtual
// root "/" maps onto Root.
type Local struct {
	Root string
}

// NewLocal returns a Local rooted at root, which must be a directory.
func NewLocal(root string) (*Local, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", abs)
	}
	return &Local{Root: abs}, nil
}

// HostPath maps a virtual path onto the host filesystem.
func (l *Local) HostPath(p string) string {
	return filepath.Join(l.Root, filepath.FromSlash(Clean(p)))
}

func (l *Local) ListDirectory(ctx context.Context, dir string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	des, err := os.ReadDir(l.HostPath(dir))
	if err != nil {
		return nil, Unavailable("list", dir, err)
	}
	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		isDir := de.IsDir()
		if de.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(l.HostPath(dir), de.Name())); err == nil {
				isDir = info.IsDir()
			}
		}
		entries = append(entries, Entry{Name: de.Name(), IsDir: isDir})
	}
	return entries, nil
}

func (l *Local) ReadLines(ctx context.Context, file string) (lines []string, retErr error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(l.HostPath(file))
	if err != nil {
		return nil, Unavailable("open", file, err)
	}
	defer func() {
		if cErr := f.Close(); cErr != nil {
			retErr = errors.Join(retErr, fmt.Errorf("close %s: %w", file, cErr))
		}
	}()
	lines, err = SplitLines(f)
	if err != nil {
		return nil, Unavailable("read", file, err)
	}
	return lines, nil
}

// WriteLines truncates file and writes every line followed by a newline. A
// failure part way leaves the file truncated.
func (l *Local) WriteLines(ctx context.Context, file string, lines []string) (retErr error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Create(l.HostPath(file))
	if err != nil {
		return Unavailable("create", file, err)
	}
	defer func() {
		if cErr := f.Close(); cErr != nil {
			retErr = errors.Join(retErr, fmt.Errorf("close %s: %w", file, cErr))
		}
	}()
	for _, line := range lines {
		if _, err := f.WriteString(line + "\n"); err != nil {
			return Unavailable("write", file, err)
		}
	}
	return nil
}
