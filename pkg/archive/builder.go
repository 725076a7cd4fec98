package archive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/dmitrymomot/imagebatch/core/logger"
	"github.com/dmitrymomot/imagebatch/pkg/naming"
	"github.com/dmitrymomot/imagebatch/pkg/sessionstore"
)

// Bundle names for cross-session and single-kind bundles.
const (
	NameAllSessions = "all-sessions.zip"
	NameRenamed     = "renamed-images.zip"
	NameOptimized   = "optimized-images.zip"
)

const entryMode = 0o755

// Bundle describes a written archive.
type Bundle struct {
	Name  string
	Files int
}

// Builder is safe for concurrent use.
type Builder struct {
	store *sessionstore.Store
	log   *slog.Logger
	now   func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.log = l
		}
	}
}

// New returns a Builder reading from store.
func New(store *sessionstore.Store, opts ...Option) *Builder {
	b := &Builder{store: store, log: logger.Discard(), now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type item struct {
	session string
	name    string
	// path inside the bundle
	path    string
	modTime time.Time
}

// Build writes a zip of scope to w. Nothing is written to w when an error
// is returned before the first entry; callers that need an all-or-nothing
// response should pass a buffer.
func (b *Builder) Build(ctx context.Context, scope Scope, w io.Writer) (*Bundle, error) {
	items, aggregated, err := b.collect(ctx, scope)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoMatchingFiles
	}

	zw := zip.NewWriter(w)
	added := 0
	for _, it := range items {
		data, err := b.read(ctx, it)
		if err != nil {
			b.log.WarnContext(ctx, "bundle entry skipped",
				logger.SessionID(it.session),
				logger.Filename(it.name),
				logger.Error(err),
			)
			continue
		}

		hdr := &zip.FileHeader{Name: it.path, Method: zip.Deflate, Modified: it.modTime}
		if hdr.Modified.IsZero() {
			hdr.Modified = b.now()
		}
		hdr.SetMode(entryMode)
		fw, err := zw.CreateHeader(hdr)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWrite, err)
		}
		if _, err := fw.Write(data); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWrite, err)
		}
		added++
	}

	if added == 0 {
		return nil, ErrNoFilesAdded
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	bundle := &Bundle{Name: bundleName(scope, aggregated, items), Files: added}
	b.log.InfoContext(ctx, "bundle built",
		logger.SessionID(scope.SessionID),
		logger.Filename(bundle.Name),
		logger.Count("files", added),
	)
	return bundle, nil
}

func (b *Builder) collect(ctx context.Context, scope Scope) ([]item, bool, error) {
	if scope.SessionID != "" {
		items, err := b.sessionItems(ctx, scope, scope.SessionID, false)
		return items, false, err
	}

	top, err := b.store.TopLevel(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrEnumerate, err)
	}

	var (
		items      []item
		aggregated bool
	)
	for _, e := range top {
		if e.IsDir {
			nested, err := b.sessionItems(ctx, scope, e.Name, true)
			if err != nil {
				return nil, false, err
			}
			if len(nested) > 0 {
				aggregated = true
				items = append(items, nested...)
			}
			continue
		}
		if scope.matches(e.Name) {
			items = append(items, item{name: e.Name, path: e.Name, modTime: e.ModTime})
		}
	}
	return items, aggregated, nil
}

func (b *Builder) sessionItems(ctx context.Context, scope Scope, session string, prefixed bool) ([]item, error) {
	var items []item
	for f, err := range b.store.SessionFiles(ctx, session) {
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEnumerate, err)
		}
		if !scope.matches(f.Name) {
			continue
		}
		it := item{session: session, name: f.Name, path: f.Name, modTime: f.ModTime}
		if prefixed {
			it.path = session + "/" + f.Name
		}
		items = append(items, it)
	}
	return items, nil
}

func (b *Builder) read(ctx context.Context, it item) ([]byte, error) {
	rc, err := b.store.Open(ctx, it.session, it.name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func bundleName(scope Scope, aggregated bool, items []item) string {
	switch {
	case scope.SessionID != "":
		return scope.SessionID + ".zip"
	case aggregated:
		return NameAllSessions
	}
	for _, it := range items {
		if !naming.LooksRenamed(it.name) {
			return NameOptimized
		}
	}
	return NameRenamed
}
