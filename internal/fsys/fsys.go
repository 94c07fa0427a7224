// Package fsys defines the filesystem collaborator used by the browser and
// editor, and a local implementation rooted at a host directory.
package fsys

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

const (
	// MaxEntries is the number of entries kept per directory listing.
	MaxEntries = 512
	// MaxNameLen is the number of bytes kept of an entry name.
	MaxNameLen = 255
	// MaxPathLen bounds a path including its terminator, so paths hold at
	// most MaxPathLen-1 bytes.
	MaxPathLen = 256
)

// Entry is one node of a directory listing.
type Entry struct {
	Name  string
	IsDir bool
}

// FS is a filesystem addressed by slash-separated paths rooted at "/".
type FS interface {
	ListDirectory(ctx context.Context, dir string) ([]Entry, error)
	ReadLines(ctx context.Context, file string) ([]string, error)
	WriteLines(ctx context.Context, file string, lines []string) error
}

// ErrUnavailable marks a directory or file that could not be opened.
var ErrUnavailable = errors.New("resource unavailable")

// PathError records a failed operation on a path.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, ErrUnavailable)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// Is makes every PathError match ErrUnavailable.
func (e *PathError) Is(target error) bool { return target == ErrUnavailable }

// Unavailable wraps err as a PathError for op on p.
func Unavailable(op, p string, err error) error {
	return &PathError{Op: op, Path: p, Err: err}
}

// Join appends name to dir. It reports false when the result would not fit
// in MaxPathLen.
func Join(dir, name string) (string, bool) {
	var p string
	if dir == "/" || dir == "" {
		p = "/" + name
	} else {
		p = strings.TrimRight(dir, "/") + "/" + name
	}
	if len(p) > MaxPathLen-1 {
		return dir, false
	}
	return p, true
}

// Parent trims the last segment of p. The root is its own parent.
func Parent(p string) string {
	p = strings.TrimRight(p, "/")
	if p == "" {
		return "/"
	}
	i := strings.LastIndexByte(p, '/')
	if i <= 0 {
		return "/"
	}
	return p[:i]
}

// Clean normalizes p into an absolute slash path.
func Clean(p string) string {
	return path.Clean("/" + p)
}

// SplitLines reads r as newline-terminated text. A trailing "\r" before each
// "\n" is dropped, a final newline does not add an empty line, and empty input
// yields no lines.
func SplitLines(r io.Reader) ([]string, error) {
	var lines []string
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			lines = append(lines, line)
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return lines, err
		}
	}
}

// JoinLines renders lines as newline-terminated text.
func JoinLines(lines []string) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}
