package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/imagebatch/core/handler"
)

// CORSConfig configures cross-origin access.
type CORSConfig struct {
	Skip func(ctx handler.Context) bool
	// AllowOrigins lists allowed origins; empty or "*" allows any.
	AllowOrigins []string
	// AllowMethods defaults to GET, HEAD and POST.
	AllowMethods []string
	AllowHeaders []string
	// ExposeHeaders defaults to Content-Disposition and X-Request-ID so
	// browsers can read the bundle filename.
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           int
}

// CORS allows any origin for GET, HEAD and POST.
func CORS[C handler.Context]() handler.Middleware[C] {
	return CORSWithConfig[C](CORSConfig{})
}

// CORSWithConfig answers preflight requests and decorates actual responses.
func CORSWithConfig[C handler.Context](cfg CORSConfig) handler.Middleware[C] {
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = []string{http.MethodGet, http.MethodHead, http.MethodPost}
	}
	if len(cfg.AllowHeaders) == 0 {
		cfg.AllowHeaders = []string{"Accept", "Content-Type", "Origin", "X-Request-ID"}
	}
	if cfg.ExposeHeaders == nil {
		cfg.ExposeHeaders = []string{"Content-Disposition", "X-Request-ID"}
	}

	allowMethods := strings.Join(cfg.AllowMethods, ",")
	allowHeaders := strings.Join(cfg.AllowHeaders, ",")
	exposeHeaders := strings.Join(cfg.ExposeHeaders, ",")
	wildcard := len(cfg.AllowOrigins) == 0 || slices.Contains(cfg.AllowOrigins, "*")

	resolve := func(origin string) (string, bool) {
		switch {
		case wildcard:
			return "*", true
		case origin != "" && slices.Contains(cfg.AllowOrigins, origin):
			return origin, true
		default:
			return "", false
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			req := ctx.Request()
			allowedOrigin, allowed := resolve(req.Header.Get("Origin"))

			requestMethod := req.Header.Get("Access-Control-Request-Method")
			if req.Method == http.MethodOptions && requestMethod != "" {
				if !allowed || !slices.Contains(cfg.AllowMethods, requestMethod) {
					return func(w http.ResponseWriter, r *http.Request) error {
						w.WriteHeader(http.StatusForbidden)
						return nil
					}
				}
				return func(w http.ResponseWriter, r *http.Request) error {
					h := w.Header()
					h.Set("Access-Control-Allow-Origin", allowedOrigin)
					h.Set("Access-Control-Allow-Methods", allowMethods)
					h.Set("Access-Control-Allow-Headers", allowHeaders)
					if cfg.AllowCredentials && allowedOrigin != "*" {
						h.Set("Access-Control-Allow-Credentials", "true")
					}
					if cfg.MaxAge > 0 {
						h.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
					}
					h.Add("Vary", "Origin")
					w.WriteHeader(http.StatusNoContent)
					return nil
				}
			}

			resp := next(ctx)
			if !allowed || resp == nil {
				return resp
			}
			return func(w http.ResponseWriter, r *http.Request) error {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", allowedOrigin)
				if cfg.AllowCredentials && allowedOrigin != "*" {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
				if exposeHeaders != "" {
					h.Set("Access-Control-Expose-Headers", exposeHeaders)
				}
				h.Add("Vary", "Origin")
				return resp(w, r)
			}
		}
	}
}
