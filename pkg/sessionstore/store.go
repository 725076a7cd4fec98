package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/imagebatch/core/logger"
	"github.com/dmitrymomot/imagebatch/core/storage"
	"github.com/dmitrymomot/imagebatch/pkg/naming"
)

// DefaultPublicPath is the URL prefix outputs are served under.
const DefaultPublicPath = "/optimized"

// Store is safe for concurrent use.
type Store struct {
	storage    storage.Storage
	publicPath string
	log        *slog.Logger
	newID      func(kind string) string
}

// Option configures a Store.
type Option func(*Store)

// WithPublicPath sets the URL prefix used by URL.
func WithPublicPath(p string) Option {
	return func(s *Store) {
		if p = strings.TrimRight(p, "/"); p != "" {
			s.publicPath = p
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithIDGenerator overrides naming.NewSessionID.
func WithIDGenerator(fn func(kind string) string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New returns a Store on top of st.
func New(st storage.Storage, opts ...Option) *Store {
	s := &Store{
		storage:    st,
		publicPath: DefaultPublicPath,
		log:        logger.Discard(),
		newID:      naming.NewSessionID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PublicPath returns the configured URL prefix.
func (s *Store) PublicPath() string { return s.publicPath }

// CreateSession allocates a new session of kind and prepares its directory.
func (s *Store) CreateSession(ctx context.Context, kind string) (*Session, error) {
	id := s.newID(kind)
	if err := s.storage.MkdirAll(ctx, id); err != nil {
		s.log.ErrorContext(ctx, "session location unavailable",
			logger.SessionID(id),
			logger.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrPrepare, err)
	}

	sess := &Session{ID: id, Kind: kind, CreatedAt: time.Now(), store: s}
	if parsed, err := naming.ParseSessionID(id); err == nil {
		sess.CreatedAt = parsed.CreatedAt
	}

	s.log.DebugContext(ctx, "session created", logger.SessionID(id), logger.Kind(kind))
	return sess, nil
}

// File is one stored output.
type File struct {
	// Session is empty for legacy top-level files.
	Session string    `json:"session,omitempty"`
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time,omitzero"`
}

// SessionFiles lazily enumerates the files of session id. A missing session,
// or a name that belongs to a loose file, yields nothing; other listing failures are yielded once as an error.
func (s *Store) SessionFiles(ctx context.Context, id string) iter.Seq2[File, error] {
	return func(yield func(File, error) bool) {
		if !validSegment(id) {
			return
		}
		entries, err := s.storage.List(ctx, id)
		if err != nil {
			if !errors.Is(err, storage.ErrDirectoryNotFound) && !errors.Is(err, storage.ErrNotADirectory) {
				yield(File{}, fmt.Errorf("list session %s: %w", id, err))
			}
			return
		}
		for _, e := range entries {
			if e.IsDir || hidden(e.Name) {
				continue
			}
			f := File{Session: id, Name: e.Name, Path: e.Path, Size: e.Size, ModTime: e.ModTime}
			if !yield(f, nil) {
				return
			}
		}
	}
}

// TopLevel returns the root entries: legacy files and session directories.
// An empty or missing root is not an error.
func (s *Store) TopLevel(ctx context.Context) ([]storage.Entry, error) {
	entries, err := s.storage.List(ctx, "")
	if err != nil {
		if errors.Is(err, storage.ErrDirectoryNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list store root: %w", err)
	}
	return slices.DeleteFunc(entries, func(e storage.Entry) bool { return hidden(e.Name) }), nil
}

// Summary describes one session directory.
type Summary struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	FileCount int       `json:"file_count"`
}

// Sessions summarises every session directory, newest first. Directories
// whose names are not session identifiers are listed without kind or time.
func (s *Store) Sessions(ctx context.Context) ([]Summary, error) {
	top, err := s.TopLevel(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Summary, 0, len(top))
	for _, e := range top {
		if !e.IsDir {
			continue
		}
		sum := Summary{ID: e.Name}
		if parsed, err := naming.ParseSessionID(e.Name); err == nil {
			sum.Kind = parsed.Kind
			sum.CreatedAt = parsed.CreatedAt
		}
		for _, err := range s.SessionFiles(ctx, e.Name) {
			if err != nil {
				return nil, err
			}
			sum.FileCount++
		}
		out = append(out, sum)
	}

	slices.SortStableFunc(out, func(a, b Summary) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

// Open returns the content of a stored output. sessionID is empty for legacy
// top-level files.
func (s *Store) Open(ctx context.Context, sessionID, name string) (io.ReadCloser, error) {
	p, err := s.path(sessionID, name)
	if err != nil {
		return nil, err
	}
	return s.storage.Open(ctx, p)
}

// URL returns the public retrieval path of an output.
func (s *Store) URL(sessionID, name string) string {
	if sessionID == "" {
		return s.publicPath + "/" + name
	}
	return s.publicPath + "/" + sessionID + "/" + name
}

// Ping checks the underlying storage.
func (s *Store) Ping(ctx context.Context) error {
	return s.storage.Ping(ctx)
}

func (s *Store) path(sessionID, name string) (string, error) {
	if !validSegment(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if sessionID == "" {
		return name, nil
	}
	if !validSegment(sessionID) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, sessionID)
	}
	return sessionID + "/" + name, nil
}

func validSegment(s string) bool {
	return s != "" && !hidden(s) && !strings.ContainsAny(s, "/\\\x00")
}

// hidden covers dotfiles and in-flight temp files.
func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
