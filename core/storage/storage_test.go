package storage_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/imagebatch/core/storage"
)

func TestCleanPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: ""},
		{in: "/", want: ""},
		{in: "a/b.webp", want: "a/b.webp"},
		{in: "/a//b/", want: "a/b"},
		{in: "./a/./b", want: "a/b"},
		{in: "../etc/passwd", wantErr: true},
		{in: "a/../../b", wantErr: true},
		{in: `a\..\b`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := storage.CleanPath(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, storage.ErrInvalidPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func backends(t *testing.T) map[string]storage.Storage {
	t.Helper()
	local, err := storage.NewLocal(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	return map[string]storage.Storage{
		"local":  local,
		"memory": storage.NewMemory(),
	}
}

func readAll(t *testing.T, s storage.Storage, p string) string {
	t.Helper()
	rc, err := s.Open(context.Background(), p)
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(b)
}

func TestBackends(t *testing.T) {
	t.Parallel()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Ping(ctx))

			require.NoError(t, s.MkdirAll(ctx, "optimize_1_abc"))
			entries, err := s.List(ctx, "optimize_1_abc")
			require.NoError(t, err)
			assert.Empty(t, entries)

			n, err := s.Put(ctx, "optimize_1_abc/cat-optimized.webp", strings.NewReader("first"))
			require.NoError(t, err)
			assert.Equal(t, int64(5), n)

			_, err = s.Put(ctx, "optimize_1_abc/cat-optimized.webp", strings.NewReader("second"))
			require.NoError(t, err)
			assert.Equal(t, "second", readAll(t, s, "optimize_1_abc/cat-optimized.webp"))

			_, err = s.Put(ctx, "legacy.webp", strings.NewReader("x"))
			require.NoError(t, err)

			top, err := s.List(ctx, "")
			require.NoError(t, err)
			require.Len(t, top, 2)
			assert.Equal(t, "legacy.webp", top[0].Name)
			assert.False(t, top[0].IsDir)
			assert.Equal(t, int64(1), top[0].Size)
			assert.Equal(t, "optimize_1_abc", top[1].Name)
			assert.True(t, top[1].IsDir)

			inner, err := s.List(ctx, "optimize_1_abc")
			require.NoError(t, err)
			require.Len(t, inner, 1)
			assert.Equal(t, "optimize_1_abc/cat-optimized.webp", inner[0].Path)
			assert.Equal(t, int64(6), inner[0].Size)

			_, err = s.Open(ctx, "optimize_1_abc/missing.webp")
			assert.ErrorIs(t, err, storage.ErrFileNotFound)

			_, err = s.List(ctx, "does-not-exist")
			assert.ErrorIs(t, err, storage.ErrDirectoryNotFound)

			_, err = s.Put(ctx, "../escape.webp", strings.NewReader("x"))
			assert.ErrorIs(t, err, storage.ErrInvalidPath)
			_, err = s.Open(ctx, "optimize_1_abc/../../etc/passwd")
			assert.ErrorIs(t, err, storage.ErrInvalidPath)
		})
	}
}

func TestBackends_ConcurrentPuts(t *testing.T) {
	t.Parallel()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			var wg sync.WaitGroup
			for i := range 16 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := s.Put(ctx, "s/same.webp", strings.NewReader(strings.Repeat("x", i+1)))
					assert.NoError(t, err)
				}()
			}
			wg.Wait()

			entries, err := s.List(ctx, "s")
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, "same.webp", entries[0].Name)
		})
	}
}

func TestLocal_OpenDirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	s, err := storage.NewLocal(root)
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir"), 0o755))

	_, err = s.Open(context.Background(), "dir")
	assert.ErrorIs(t, err, storage.ErrFileNotFound)
	assert.Equal(t, root, s.Root())
}

func TestLocal_FileAsParent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	s, err := storage.NewLocal(root)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "loose.webp"), []byte("x"), 0o644))

	_, err = s.Open(context.Background(), "loose.webp/x.webp")
	assert.ErrorIs(t, err, storage.ErrFileNotFound)

	_, err = s.List(context.Background(), "loose.webp")
	assert.ErrorIs(t, err, storage.ErrNotADirectory)
}

func TestLocal_InvalidRoot(t *testing.T) {
	t.Parallel()

	_, err := storage.NewLocal("")
	assert.ErrorIs(t, err, storage.ErrInvalidConfig)
}

func TestMemory_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := storage.NewMemory().Put(ctx, "a", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
