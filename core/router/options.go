package router

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/imagebatch/core/handler"
)

// ContextFactory builds the per-request context.
type ContextFactory[C handler.Context] func(w http.ResponseWriter, r *http.Request, params map[string]string) C

// Option configures a router.
type Option[C handler.Context] func(*mux[C])

// WithErrorHandler replaces the default plain-text error handler.
func WithErrorHandler[C handler.Context](h handler.ErrorHandler[C]) Option[C] {
	return func(m *mux[C]) {
		if h != nil {
			m.errorHandler = h
		}
	}
}

// WithMiddleware registers global middleware.
func WithMiddleware[C handler.Context](middlewares ...handler.Middleware[C]) Option[C] {
	return func(m *mux[C]) {
		m.middlewares = append(m.middlewares, middlewares...)
	}
}

// WithContextFactory sets the context constructor for custom context types.
func WithContextFactory[C handler.Context](f ContextFactory[C]) Option[C] {
	return func(m *mux[C]) {
		m.newContext = f
	}
}

// WithLogger sets the logger used for panics that happen after the response was written.
func WithLogger[C handler.Context](l *slog.Logger) Option[C] {
	return func(m *mux[C]) {
		if l != nil {
			m.logger = l
		}
	}
}
