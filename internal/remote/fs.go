package remote

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/sirupsen/logrus"

	"pocketedit/internal/fsys"
)

// FileMode is applied to files written back to the remote host.
const FileMode = 0o644

// Transport is the subset of Client the FS needs.
type Transport interface {
	Output(ctx context.Context, cmd string) ([]byte, error)
	Download(ctx context.Context, remotePath string) ([]byte, error)
	Upload(ctx context.Context, remotePath string, data []byte, mode os.FileMode) error
}

// FS serves fsys.FS over a Transport. The virtual root "/" maps onto Root on
// the remote host.
type FS struct {
	t    Transport
	Root string
	log  *logrus.Entry
}

var _ fsys.FS = (*FS)(nil)

// NewFS returns an FS rooted at root. An empty root means the remote "/".
func NewFS(t Transport, root string) *FS {
	if root == "" {
		root = "/"
	}
	return &FS{
		t:    t,
		Root: root,
		log:  logrus.WithField("component", "remote"),
	}
}

// RemotePath maps a virtual path onto the remote host.
func (f *FS) RemotePath(p string) string {
	return path.Join(f.Root, fsys.Clean(p))
}

func (f *FS) ListDirectory(ctx context.Context, dir string) ([]fsys.Entry, error) {
	rp := f.RemotePath(dir)
	out, err := f.t.Output(ctx, "ls -1Ap -- "+shellQuote(rp))
	if err != nil {
		return nil, fsys.Unavailable("list", dir, err)
	}
	entries := parseListing(string(out))
	f.log.WithFields(logrus.Fields{"path": rp, "entries": len(entries)}).Debug("listed")
	return entries, nil
}

func (f *FS) ReadLines(ctx context.Context, file string) ([]string, error) {
	rp := f.RemotePath(file)
	data, err := f.t.Download(ctx, rp)
	if err != nil {
		return nil, fsys.Unavailable("read", file, err)
	}
	lines, err := fsys.SplitLines(bytes.NewReader(data))
	if err != nil {
		return nil, fsys.Unavailable("read", file, err)
	}
	f.log.WithFields(logrus.Fields{"path": rp, "lines": len(lines)}).Debug("read")
	return lines, nil
}

func (f *FS) WriteLines(ctx context.Context, file string, lines []string) error {
	rp := f.RemotePath(file)
	if err := f.t.Upload(ctx, rp, []byte(fsys.JoinLines(lines)), FileMode); err != nil {
		return fsys.Unavailable("write", file, fmt.Errorf("upload: %w", err))
	}
	f.log.WithFields(logrus.Fields{"path": rp, "lines": len(lines)}).Debug("wrote")
	return nil
}

// parseListing parses `ls -1Ap` output. A trailing slash marks a directory.
func parseListing(output string) []fsys.Entry {
	var entries []fsys.Entry
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		e := fsys.Entry{Name: line}
		if strings.HasSuffix(line, "/") {
			e.Name = strings.TrimSuffix(line, "/")
			e.IsDir = true
		}
		if e.Name == "" || e.Name == "." || e.Name == ".." {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}
