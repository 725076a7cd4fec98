package sessionstore_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/imagebatch/core/storage"
	"github.com/dmitrymomot/imagebatch/pkg/naming"
	"github.com/dmitrymomot/imagebatch/pkg/sessionstore"
)

type brokenStorage struct {
	storage.Storage
	err error
}

func (b brokenStorage) MkdirAll(context.Context, string) error { return b.err }

func (b brokenStorage) List(context.Context, string) ([]storage.Entry, error) { return nil, b.err }

func backends(t *testing.T) map[string]storage.Storage {
	t.Helper()
	local, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	return map[string]storage.Storage{
		"local":  local,
		"memory": storage.NewMemory(),
	}
}

func collect(t *testing.T, s *sessionstore.Store, id string) []sessionstore.File {
	t.Helper()
	var files []sessionstore.File
	for f, err := range s.SessionFiles(context.Background(), id) {
		require.NoError(t, err)
		files = append(files, f)
	}
	return files
}

func TestCreateSession(t *testing.T) {
	t.Parallel()

	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			store := sessionstore.New(st)

			sess, err := store.CreateSession(ctx, naming.KindOptimize)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(sess.ID, naming.KindOptimize+"_"))
			assert.Equal(t, naming.KindOptimize, sess.Kind)
			assert.False(t, sess.CreatedAt.IsZero())

			// A fresh session exists and is empty.
			assert.Empty(t, collect(t, store, sess.ID))

			top, err := store.TopLevel(ctx)
			require.NoError(t, err)
			require.Len(t, top, 1)
			assert.Equal(t, sess.ID, top[0].Name)
			assert.True(t, top[0].IsDir)
		})
	}
}

func TestCreateSession_PrepareFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk full")
	store := sessionstore.New(brokenStorage{Storage: storage.NewMemory(), err: cause})

	sess, err := store.CreateSession(context.Background(), naming.KindRename)
	require.Error(t, err)
	assert.Nil(t, sess)
	assert.ErrorIs(t, err, sessionstore.ErrPrepare)
	assert.ErrorIs(t, err, cause)
}

func TestSession_WriteAndList(t *testing.T) {
	t.Parallel()

	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			store := sessionstore.New(st)

			sess, err := store.CreateSession(ctx, naming.KindOptimize)
			require.NoError(t, err)

			n, err := sess.Write(ctx, "cat-optimized.webp", []byte("first"))
			require.NoError(t, err)
			assert.EqualValues(t, 5, n)

			// Same name again: last write wins.
			_, err = sess.Write(ctx, "cat-optimized.webp", []byte("second!"))
			require.NoError(t, err)
			_, err = sess.Write(ctx, "dog-optimized.webp", []byte("woof"))
			require.NoError(t, err)

			files := collect(t, store, sess.ID)
			require.Len(t, files, 2)
			names := []string{files[0].Name, files[1].Name}
			assert.ElementsMatch(t, []string{"cat-optimized.webp", "dog-optimized.webp"}, names)
			for _, f := range files {
				assert.Equal(t, sess.ID, f.Session)
				assert.Equal(t, sess.ID+"/"+f.Name, f.Path)
			}

			rc, err := store.Open(ctx, sess.ID, "cat-optimized.webp")
			require.NoError(t, err)
			defer rc.Close()
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, "second!", string(data))
		})
	}
}

func TestSession_WriteRejectsNestedNames(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := sessionstore.New(storage.NewMemory())
	sess, err := store.CreateSession(ctx, naming.KindRename)
	require.NoError(t, err)

	for _, name := range []string{"", "../escape.png", "a/b.png", ".hidden"} {
		_, err := sess.Write(ctx, name, []byte("x"))
		assert.ErrorIs(t, err, sessionstore.ErrInvalidName, name)
	}
}

func TestSessionFiles_Missing(t *testing.T) {
	t.Parallel()

	store := sessionstore.New(storage.NewMemory())
	assert.Empty(t, collect(t, store, "does-not-exist"))
	assert.Empty(t, collect(t, store, "../etc"))
	assert.Empty(t, collect(t, store, ""))
}

func TestSessionFiles_ListFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("backend down")
	store := sessionstore.New(brokenStorage{Storage: storage.NewMemory(), err: cause})

	var errs []error
	for _, err := range store.SessionFiles(context.Background(), "optimize_1_aaaaaaaaaaaa") {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], cause)
}

func TestSessionFiles_StopsEarly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := sessionstore.New(storage.NewMemory())
	sess, err := store.CreateSession(ctx, naming.KindOptimize)
	require.NoError(t, err)
	for _, name := range []string{"a.webp", "b.webp", "c.webp"} {
		_, err := sess.Write(ctx, name, []byte(name))
		require.NoError(t, err)
	}

	seen := 0
	for range store.SessionFiles(ctx, sess.ID) {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestTopLevel_LegacyAndEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := storage.NewMemory()
	store := sessionstore.New(st)

	top, err := store.TopLevel(ctx)
	require.NoError(t, err)
	assert.Empty(t, top)

	_, err = st.Put(ctx, "legacy-optimized.webp", strings.NewReader("old"))
	require.NoError(t, err)
	_, err = store.CreateSession(ctx, naming.KindOptimize)
	require.NoError(t, err)

	top, err = store.TopLevel(ctx)
	require.NoError(t, err)
	require.Len(t, top, 2)

	var files, dirs int
	for _, e := range top {
		if e.IsDir {
			dirs++
		} else {
			files++
		}
	}
	assert.Equal(t, 1, files)
	assert.Equal(t, 1, dirs)

	rc, err := store.Open(ctx, "", "legacy-optimized.webp")
	require.NoError(t, err)
	rc.Close()
}

func TestTopLevel_FreshLocalRoot(t *testing.T) {
	t.Parallel()

	local, err := storage.NewLocal(t.TempDir() + "/fresh")
	require.NoError(t, err)

	top, err := sessionstore.New(local).TopLevel(context.Background())
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestSessions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ids := []string{"optimize_100_aaaaaaaaaaaa", "rename_200_bbbbbbbbbbbb"}
	next := 0
	store := sessionstore.New(storage.NewMemory(), sessionstore.WithIDGenerator(func(string) string {
		id := ids[next]
		next++
		return id
	}))

	older, err := store.CreateSession(ctx, naming.KindOptimize)
	require.NoError(t, err)
	newer, err := store.CreateSession(ctx, naming.KindRename)
	require.NoError(t, err)
	assert.Equal(t, int64(100), older.CreatedAt.Unix())

	for _, name := range []string{"trip-0.jpg", "trip-1.png"} {
		_, err := newer.Write(ctx, name, []byte("x"))
		require.NoError(t, err)
	}
	_, err = older.Write(ctx, "a-optimized.webp", []byte("x"))
	require.NoError(t, err)

	sums, err := store.Sessions(ctx)
	require.NoError(t, err)
	require.Len(t, sums, 2)

	assert.Equal(t, newer.ID, sums[0].ID)
	assert.Equal(t, naming.KindRename, sums[0].Kind)
	assert.Equal(t, 2, sums[0].FileCount)
	assert.Equal(t, older.ID, sums[1].ID)
	assert.Equal(t, 1, sums[1].FileCount)
}

func TestURL(t *testing.T) {
	t.Parallel()

	store := sessionstore.New(storage.NewMemory())
	assert.Equal(t, "/optimized/s1/a.webp", store.URL("s1", "a.webp"))
	assert.Equal(t, "/optimized/a.webp", store.URL("", "a.webp"))

	custom := sessionstore.New(storage.NewMemory(), sessionstore.WithPublicPath("/files/"))
	assert.Equal(t, "/files/s1/a.webp", custom.URL("s1", "a.webp"))
	assert.Equal(t, "/files", custom.PublicPath())
}

func TestOpen_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := sessionstore.New(storage.NewMemory())

	_, err := store.Open(ctx, "s1", "missing.webp")
	assert.ErrorIs(t, err, storage.ErrFileNotFound)

	_, err = store.Open(ctx, "..", "passwd")
	assert.ErrorIs(t, err, sessionstore.ErrInvalidName)
}
