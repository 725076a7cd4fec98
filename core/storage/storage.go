package storage

import (
	"context"
	"io"
	"time"
)

// Storage is a minimal hierarchical key-value store.
type Storage interface {
	// MkdirAll prepares dir and its parents. Backends without real
	// directories may treat it as a validation-only call.
	MkdirAll(ctx context.Context, dir string) error
	// Put writes r to path, replacing any existing object, and returns the
	// number of bytes stored.
	Put(ctx context.Context, path string, r io.Reader) (int64, error)
	// Open returns a reader for path or ErrFileNotFound.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	// List returns the immediate children of dir or ErrDirectoryNotFound.
	List(ctx context.Context, dir string) ([]Entry, error)
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}

// Entry is one child returned by List.
type Entry struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	IsDir   bool      `json:"is_dir"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time,omitzero"`
}
