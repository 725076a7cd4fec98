package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"runtime"

	"github.com/gen2brain/webp"
	"golang.org/x/sync/semaphore"
)

// OutputExt is the extension of every transform output.
const OutputExt = "webp"

// Config controls the transform.
type Config struct {
	MaxWidth  int `env:"IMAGE_MAX_WIDTH" envDefault:"2048"`
	MaxHeight int `env:"IMAGE_MAX_HEIGHT" envDefault:"2048"`
	Quality   int `env:"WEBP_QUALITY" envDefault:"75"`
	// Workers bounds concurrent transforms; 0 means GOMAXPROCS.
	Workers int `env:"TRANSFORM_WORKERS" envDefault:"0"`
	// MaxPixels rejects decompression bombs before decoding.
	MaxPixels int `env:"IMAGE_MAX_PIXELS" envDefault:"100000000"`
}

// DefaultConfig mirrors the envDefault values.
func DefaultConfig() Config {
	return Config{MaxWidth: 2048, MaxHeight: 2048, Quality: 75, MaxPixels: 100_000_000}
}

// Transformer resizes and re-encodes images to WebP. Safe for concurrent use.
type Transformer struct {
	cfg  Config
	pool *semaphore.Weighted
}

// NewTransformer applies defaults for zero fields.
func NewTransformer(cfg Config) *Transformer {
	def := DefaultConfig()
	if cfg.MaxWidth <= 0 {
		cfg.MaxWidth = def.MaxWidth
	}
	if cfg.MaxHeight <= 0 {
		cfg.MaxHeight = def.MaxHeight
	}
	if cfg.Quality <= 0 || cfg.Quality > 100 {
		cfg.Quality = def.Quality
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.MaxPixels <= 0 {
		cfg.MaxPixels = def.MaxPixels
	}
	return &Transformer{cfg: cfg, pool: semaphore.NewWeighted(int64(cfg.Workers))}
}

// Config returns the effective configuration.
func (t *Transformer) Config() Config { return t.cfg }

// Transform decodes data, fits it into the bounding box and encodes WebP.
// It blocks until a worker slot is free or ctx is done.
func (t *Transformer) Transform(ctx context.Context, data []byte) ([]byte, error) {
	info, err := Sniff(data)
	if err != nil {
		return nil, err
	}
	if info.Width*info.Height > t.cfg.MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, info.Width, info.Height)
	}

	if err := t.pool.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer t.pool.Release(1)

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	img = Fit(img, t.cfg.MaxWidth, t.cfg.MaxHeight)

	var buf bytes.Buffer
	buf.Grow(len(data) / 2)
	if err := webp.Encode(&buf, img, webp.Options{Quality: t.cfg.Quality}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}
