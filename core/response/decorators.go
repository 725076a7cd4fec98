package response

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrymomot/imagebatch/core/handler"
)

// WithHeaders sets headers before the wrapped response renders.
func WithHeaders(resp handler.Response, headers map[string]string) handler.Response {
	if resp == nil || len(headers) == 0 {
		return resp
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		for k, v := range headers {
			w.Header().Set(k, v)
		}
		return resp(w, r)
	}
}

// WithCache sets Cache-Control. A non-positive maxAge disables caching.
func WithCache(resp handler.Response, maxAge time.Duration) handler.Response {
	if resp == nil {
		return nil
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		if maxAge > 0 {
			w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(maxAge.Seconds())))
		} else {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		}
		return resp(w, r)
	}
}
