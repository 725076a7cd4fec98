package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
	"sync"
	"time"
)

var _ Storage = (*Memory)(nil)

type memObject struct {
	data    []byte
	modTime time.Time
}

// Memory is an in-process Storage for tests and ephemeral runs.
// Directories are tracked explicitly and also implied by object paths.
type Memory struct {
	mu      sync.RWMutex
	objects map[string]memObject
	dirs    map[string]struct{}
	now     func() time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		objects: make(map[string]memObject),
		dirs:    make(map[string]struct{}),
		now:     time.Now,
	}
}

func (m *Memory) MkdirAll(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean, err := CleanPath(dir)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[clean]; ok {
		return fmt.Errorf("%w: %s", ErrNotADirectory, dir)
	}
	for d := clean; d != "" && d != "."; d = path.Dir(d) {
		m.dirs[d] = struct{}{}
	}
	return nil
}

func (m *Memory) Put(ctx context.Context, p string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	clean, err := CleanPath(p)
	if err != nil {
		return 0, err
	}
	if clean == "" {
		return 0, fmt.Errorf("%w: empty file path", ErrInvalidPath)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.dirs[clean]; ok {
		return 0, fmt.Errorf("%w: %s is a directory", ErrInvalidPath, p)
	}
	m.objects[clean] = memObject{data: data, modTime: m.now()}
	return int64(len(data)), nil
}

func (m *Memory) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean, err := CleanPath(p)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	obj, ok := m.objects[clean]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, p)
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (m *Memory) List(ctx context.Context, dir string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean, err := CleanPath(dir)
	if err != nil {
		return nil, err
	}

	prefix := ""
	if clean != "" {
		prefix = clean + "/"
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.dirs[clean]
	exists = exists || clean == ""

	seen := make(map[string]Entry)
	for key, obj := range m.objects {
		rest, ok := strings.CutPrefix(key, prefix)
		if !ok {
			continue
		}
		exists = true
		if name, _, nested := strings.Cut(rest, "/"); nested {
			seen[name] = Entry{Name: name, Path: prefix + name, IsDir: true}
		} else {
			seen[name] = Entry{Name: name, Path: key, Size: int64(len(obj.data)), ModTime: obj.modTime}
		}
	}
	for d := range m.dirs {
		rest, ok := strings.CutPrefix(d, prefix)
		if !ok || rest == "" {
			continue
		}
		name, _, _ := strings.Cut(rest, "/")
		if _, dup := seen[name]; !dup {
			seen[name] = Entry{Name: name, Path: prefix + name, IsDir: true}
		}
	}

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
	}

	entries := make([]Entry, 0, len(seen))
	for _, e := range seen {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })
	return entries, nil
}

func (m *Memory) Ping(ctx context.Context) error {
	return ctx.Err()
}
