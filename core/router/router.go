package router

import (
	"net/http"

	"github.com/dmitrymomot/imagebatch/core/handler"
)

// Router registers typed handlers and serves HTTP.
type Router[C handler.Context] interface {
	http.Handler

	Get(pattern string, h handler.HandlerFunc[C])
	Post(pattern string, h handler.HandlerFunc[C])
	Put(pattern string, h handler.HandlerFunc[C])
	Delete(pattern string, h handler.HandlerFunc[C])
	Head(pattern string, h handler.HandlerFunc[C])
	// Handle registers h for every method.
	Handle(pattern string, h handler.HandlerFunc[C])

	// Use appends middleware. It panics once routes have been registered.
	Use(middlewares ...handler.Middleware[C])
	// With returns an inline router whose routes also run the given middleware.
	With(middlewares ...handler.Middleware[C]) Router[C]
	Group(fn func(r Router[C])) Router[C]
	Route(pattern string, fn func(r Router[C])) Router[C]
}

// New creates a router. Without WithContextFactory the context type must be *Context.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux(opts...)
}
