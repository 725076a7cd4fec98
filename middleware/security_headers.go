package middleware

import (
	"maps"

	"github.com/dmitrymomot/imagebatch/core/handler"
)

// SecurityHeadersConfig lists the headers added to every response.
// Empty fields are not sent.
type SecurityHeadersConfig struct {
	Skip func(ctx handler.Context) bool

	ContentTypeOptions        string
	FrameOptions              string
	ReferrerPolicy            string
	ContentSecurityPolicy     string
	StrictTransportSecurity   string
	CrossOriginResourcePolicy string
	CustomHeaders             map[string]string
}

// APISecurity suits a JSON and file download API: nothing is framed or
// scripted, but stored images may be embedded by other origins.
var APISecurity = SecurityHeadersConfig{
	ContentTypeOptions:        "nosniff",
	FrameOptions:              "DENY",
	ReferrerPolicy:            "no-referrer",
	ContentSecurityPolicy:     "default-src 'none'; frame-ancestors 'none'",
	CrossOriginResourcePolicy: "cross-origin",
}

// SecurityHeaders applies APISecurity.
func SecurityHeaders[C handler.Context]() handler.Middleware[C] {
	return SecurityHeadersWithConfig[C](APISecurity)
}

// SecurityHeadersWithConfig sets the configured headers before the response
// is rendered, so handlers can still override them.
func SecurityHeadersWithConfig[C handler.Context](cfg SecurityHeadersConfig) handler.Middleware[C] {
	headers := map[string]string{
		"X-Content-Type-Options":       cfg.ContentTypeOptions,
		"X-Frame-Options":              cfg.FrameOptions,
		"Referrer-Policy":              cfg.ReferrerPolicy,
		"Content-Security-Policy":      cfg.ContentSecurityPolicy,
		"Strict-Transport-Security":    cfg.StrictTransportSecurity,
		"Cross-Origin-Resource-Policy": cfg.CrossOriginResourcePolicy,
	}
	maps.Copy(headers, cfg.CustomHeaders)
	maps.DeleteFunc(headers, func(_, v string) bool { return v == "" })

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			h := ctx.ResponseWriter().Header()
			for k, v := range headers {
				h.Set(k, v)
			}
			if ctx.Request().TLS == nil {
				// HSTS is ignored by browsers over plain HTTP.
				h.Del("Strict-Transport-Security")
			}
			return next(ctx)
		}
	}
}
