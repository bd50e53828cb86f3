// Package storage is the mass-storage contract the menu engine lists
// directories and opens resources through, plus an afero-backed
// implementation of it.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// ErrNotMounted is returned when the storage medium is not available.
var ErrNotMounted = errors.New("storage: not mounted")

// Entry is one item of a directory listing.
type Entry struct {
	Name  string
	IsDir bool
}

// Storage lists directories and opens files by slash-separated, rooted path.
// Calls are synchronous; a failed listing returns an error, never a partial list.
type Storage interface {
	List(dir string) ([]Entry, error)
	Open(name string) (io.ReadCloser, error)
}

// FS implements Storage on top of an afero filesystem.
type FS struct {
	fs afero.Fs
}

var _ Storage = (*FS)(nil)

// New wraps an afero filesystem.
func New(fs afero.Fs) *FS {
	return &FS{fs: fs}
}

// NewOS serves the host directory root as "/".
func NewOS(root string) *FS {
	return New(afero.NewBasePathFs(afero.NewOsFs(), root))
}

// Mounted reports whether the root of the filesystem is reachable.
func (s *FS) Mounted() bool {
	info, err := s.fs.Stat("/")
	return err == nil && info.IsDir()
}

// List returns the entries of dir in name order.
func (s *FS) List(dir string) ([]Entry, error) {
	if !s.Mounted() {
		return nil, ErrNotMounted
	}

	infos, err := afero.ReadDir(s.fs, Clean(dir))
	if err != nil {
		return nil, fmt.Errorf("storage: list %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, Entry{Name: info.Name(), IsDir: info.IsDir()})
	}
	return entries, nil
}

// Open opens name for reading.
func (s *FS) Open(name string) (io.ReadCloser, error) {
	if !s.Mounted() {
		return nil, ErrNotMounted
	}

	f, err := s.fs.Open(Clean(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("storage: open %s: %w", name, os.ErrNotExist)
		}
		return nil, fmt.Errorf("storage: open %s: %w", name, err)
	}
	return f, nil
}

// Clean normalizes p to a rooted path with no trailing slash (except "/").
func Clean(p string) string {
	return path.Clean("/" + strings.TrimSpace(p))
}

// Parent returns the directory containing p and the last element of p.
func Parent(p string) (dir, leaf string) {
	p = Clean(p)
	if p == "/" {
		return "/", ""
	}
	dir, leaf = path.Split(p)
	return Clean(dir), leaf
}
