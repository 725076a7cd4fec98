package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/dmitrymomot/imagebatch/core/handler"
)

type clientIPContextKey struct{}

// ClientIPConfig configures client address extraction.
type ClientIPConfig struct {
	Skip func(ctx handler.Context) bool
	// TrustProxy reads forwarding headers. Leave it off unless a proxy that
	// overwrites them sits in front of the server.
	TrustProxy bool
}

// ClientIP stores the peer address in the request context.
func ClientIP[C handler.Context]() handler.Middleware[C] {
	return ClientIPWithConfig[C](ClientIPConfig{})
}

// ClientIPWithConfig stores the client address in the request context, read
// from CF-Connecting-IP, X-Forwarded-For or X-Real-IP when TrustProxy is set.
func ClientIPWithConfig[C handler.Context](cfg ClientIPConfig) handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}
			ctx.SetValue(clientIPContextKey{}, clientIP(ctx.Request(), cfg.TrustProxy))
			return next(ctx)
		}
	}
}

// GetClientIP returns the address stored by ClientIP.
func GetClientIP(ctx handler.Context) (string, bool) {
	ip, ok := ctx.Value(clientIPContextKey{}).(string)
	return ip, ok && ip != ""
}

func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if ip := parseIP(r.Header.Get("CF-Connecting-IP")); ip != "" {
			return ip
		}
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := parseIP(first); ip != "" {
				return ip
			}
		}
		if ip := parseIP(r.Header.Get("X-Real-IP")); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return parseIP(host)
}

func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
