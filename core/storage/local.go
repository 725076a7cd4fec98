package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

var _ Storage = (*Local)(nil)

// Local stores objects as files under a root directory.
type Local struct {
	root     string
	dirPerm  fs.FileMode
	filePerm fs.FileMode
}

// LocalOption configures a Local backend.
type LocalOption func(*Local)

// WithDirPerm sets the mode for created directories (default 0o755).
func WithDirPerm(perm fs.FileMode) LocalOption {
	return func(l *Local) { l.dirPerm = perm }
}

// WithFilePerm sets the mode for written files (default 0o644).
func WithFilePerm(perm fs.FileMode) LocalOption {
	return func(l *Local) { l.filePerm = perm }
}

// NewLocal creates the root directory if needed and returns the backend.
func NewLocal(root string, opts ...LocalOption) (*Local, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty root", ErrInvalidConfig)
	}
	l := &Local{root: filepath.Clean(root), dirPerm: 0o755, filePerm: 0o644}
	for _, opt := range opts {
		opt(l)
	}
	if err := os.MkdirAll(l.root, l.dirPerm); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return l, nil
}

// Root returns the filesystem root directory.
func (l *Local) Root() string { return l.root }

func (l *Local) resolve(p string) (string, string, error) {
	clean, err := CleanPath(p)
	if err != nil {
		return "", "", err
	}
	return clean, filepath.Join(l.root, filepath.FromSlash(clean)), nil
}

func (l *Local) MkdirAll(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, full, err := l.resolve(dir)
	if err != nil {
		return err
	}
	return os.MkdirAll(full, l.dirPerm)
}

// Put writes through a temporary file and renames it into place so readers
// never observe a partial object.
func (l *Local) Put(ctx context.Context, p string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	clean, full, err := l.resolve(p)
	if err != nil {
		return 0, err
	}
	if clean == "" {
		return 0, fmt.Errorf("%w: empty file path", ErrInvalidPath)
	}

	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, l.dirPerm); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, err
	}
	if err := os.Chmod(tmp.Name(), l.filePerm); err != nil {
		return 0, err
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		return 0, err
	}
	return n, nil
}

func (l *Local) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, full, err := l.resolve(p)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(full)
	if err != nil {
		// ENOTDIR: a parent segment is a file.
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, p)
		}
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrFileNotFound, p)
	}
	return f, nil
}

// List returns entries sorted by name. Temporary files from in-flight Puts are hidden.
func (l *Local) List(ctx context.Context, dir string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean, full, err := l.resolve(dir)
	if err != nil {
		return nil, err
	}

	des, err := os.ReadDir(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
		}
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) && !isDir(full) {
			return nil, fmt.Errorf("%w: %s", ErrNotADirectory, dir)
		}
		return nil, err
	}

	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		if isTemp(de.Name()) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		e := Entry{
			Name:    de.Name(),
			Path:    joinSlash(clean, de.Name()),
			IsDir:   de.IsDir(),
			ModTime: info.ModTime(),
		}
		if !e.IsDir {
			e.Size = info.Size()
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (l *Local) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(l.root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotADirectory, l.root)
	}
	return nil
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

func isTemp(name string) bool {
	return len(name) > 5 && name[:5] == ".tmp-"
}

func joinSlash(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}
