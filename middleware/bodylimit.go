package middleware

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrymomot/imagebatch/core/handler"
	"github.com/dmitrymomot/imagebatch/core/response"
)

const (
	KB int64 = 1024
	MB       = 1024 * KB
	GB       = 1024 * MB
)

// ErrBodyTooLarge is returned by reads past the configured limit.
var ErrBodyTooLarge = errors.New("request body too large")

// BodyLimitConfig configures the body limit middleware.
type BodyLimitConfig struct {
	Skip func(ctx handler.Context) bool
	// MaxSize in bytes (default: 4 MiB).
	MaxSize int64
}

// BodyLimit limits bodies to 4 MiB.
func BodyLimit[C handler.Context]() handler.Middleware[C] {
	return BodyLimitWithConfig[C](BodyLimitConfig{})
}

// BodyLimitWithSize limits bodies to maxSize bytes.
func BodyLimitWithSize[C handler.Context](maxSize int64) handler.Middleware[C] {
	return BodyLimitWithConfig[C](BodyLimitConfig{MaxSize: maxSize})
}

// BodyLimitWithConfig rejects requests whose Content-Length exceeds the limit
// with 413 and caps streaming bodies so reads past the limit fail with
// ErrBodyTooLarge.
func BodyLimitWithConfig[C handler.Context](cfg BodyLimitConfig) handler.Middleware[C] {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 4 * MB
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			req := ctx.Request()
			if req.ContentLength > cfg.MaxSize {
				return response.Error(response.ErrRequestEntityTooLarge.
					WithMessage(fmt.Sprintf("request body too large, maximum allowed is %s", formatBytes(cfg.MaxSize))).
					WithDetails(map[string]any{"limit": cfg.MaxSize, "size": req.ContentLength}))
			}
			if req.Body != nil && req.Body != http.NoBody {
				req.Body = &limitedReader{rc: req.Body, remaining: cfg.MaxSize}
			}
			return next(ctx)
		}
	}
}

// IsBodyTooLarge reports whether err came from a capped body.
func IsBodyTooLarge(err error) bool {
	return errors.Is(err, ErrBodyTooLarge)
}

type limitedReader struct {
	rc        io.ReadCloser
	remaining int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.remaining <= 0 {
		// Probe one byte so an exactly-sized body still reaches EOF cleanly.
		var probe [1]byte
		n, err := l.rc.Read(probe[:])
		if n > 0 {
			return 0, ErrBodyTooLarge
		}
		return 0, err
	}
	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.rc.Read(p)
	l.remaining -= int64(n)
	return n, err
}

func (l *limitedReader) Close() error { return l.rc.Close() }

func formatBytes(n int64) string {
	switch {
	case n >= GB:
		return fmt.Sprintf("%.2f GB", float64(n)/float64(GB))
	case n >= MB:
		return fmt.Sprintf("%.2f MB", float64(n)/float64(MB))
	case n >= KB:
		return fmt.Sprintf("%.2f KB", float64(n)/float64(KB))
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
