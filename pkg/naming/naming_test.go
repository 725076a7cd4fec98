package naming_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/imagebatch/pkg/naming"
)

func TestNewSessionID(t *testing.T) {
	t.Parallel()

	before := time.Now().Unix()
	id := naming.NewSessionID(naming.KindOptimize)

	parsed, err := naming.ParseSessionID(id)
	require.NoError(t, err)
	assert.Equal(t, naming.KindOptimize, parsed.Kind)
	assert.GreaterOrEqual(t, parsed.CreatedAt.Unix(), before)
	assert.Len(t, parsed.Token, 12)
	assert.Equal(t, id, parsed.String())
}

func TestNewSessionID_Unique(t *testing.T) {
	t.Parallel()

	const n = 2000
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids[i] = naming.NewSessionID(naming.KindRename)
		}()
	}
	wg.Wait()

	slices.Sort(ids)
	assert.Len(t, slices.Compact(ids), n)
}

func TestParseSessionID_Invalid(t *testing.T) {
	t.Parallel()

	for _, id := range []string{
		"",
		"optimize",
		"optimize_123",
		"optimize_abc_0123456789ab",
		"optimize_123_0123456789",
		"optimize_123_0123456789zz",
		"Optimize_123_0123456789ab",
		"../etc_123_0123456789ab",
		"optimize_123_0123456789ab/..",
		"does-not-exist",
	} {
		assert.False(t, naming.IsSessionID(id), id)
		_, err := naming.ParseSessionID(id)
		assert.ErrorIs(t, err, naming.ErrInvalidSessionID, id)
	}
	assert.True(t, naming.IsSessionID("rename_1718000000_0123456789ab"))
}

func TestAtomicCounter_Concurrent(t *testing.T) {
	t.Parallel()

	var c naming.AtomicCounter
	const n = 1000
	got := make([]uint64, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.Next(context.Background())
			assert.NoError(t, err)
			got[i] = v
		}()
	}
	wg.Wait()

	slices.Sort(got)
	for i, v := range got {
		require.Equal(t, uint64(i), v)
	}
}

type fakeIncr struct {
	mu   sync.Mutex
	vals map[string]int64
	err  error
}

func (f *fakeIncr) Incr(ctx context.Context, key string) *redis.IntCmd {
	if f.err != nil {
		cmd := redis.NewIntCmd(ctx, "incr", key)
		cmd.SetErr(f.err)
		return cmd
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vals[key]++
	return redis.NewIntResult(f.vals[key], nil)
}

func TestRedisCounter(t *testing.T) {
	t.Parallel()

	fake := &fakeIncr{vals: map[string]int64{}}
	c := naming.NewRedisCounter(fake, "")

	for want := range uint64(3) {
		got, err := c.Next(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, int64(3), fake.vals[naming.DefaultCounterKey])

	failing := naming.NewRedisCounter(&fakeIncr{err: errors.New("conn reset")}, "k")
	_, err := failing.Next(context.Background())
	assert.ErrorContains(t, err, "conn reset")
}

func TestFilenames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "photo-optimized.webp", naming.OptimizedName("photo.jpg", "webp"))
	assert.Equal(t, "archive.tar-optimized.webp", naming.OptimizedName("archive.tar.png", "webp"))
	assert.Equal(t, "photo-optimized.webp", naming.OptimizedName("dir/photo.jpeg", "webp"))
	assert.Equal(t, "my_photo__1_-optimized.webp", naming.OptimizedName("my photo (1).png", "webp"))
	assert.Equal(t, "image-optimized.webp", naming.OptimizedName("...png", "webp"))
	assert.Equal(t, "café", naming.SanitizeStem("café"))
	assert.Equal(t, "trip-0.JPG", naming.RenamedName("trip", 0, "JPG"))
	assert.Equal(t, "trip-7", naming.RenamedName("trip", 7, ""))
	assert.Equal(t, "png", naming.Ext("cat.png"))
	assert.Equal(t, "noext", naming.Stem("noext"))

	assert.True(t, naming.LooksRenamed("trip-0.jpg"))
	assert.False(t, naming.LooksRenamed("cat-optimized.webp"))
	assert.False(t, naming.LooksRenamed("plain.webp"))
}
