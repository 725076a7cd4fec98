package router

import (
	"context"
	"net/http"
	"time"
)

// Context is the default handler.Context implementation.
type Context struct {
	w      http.ResponseWriter
	r      *http.Request
	params map[string]string
}

func newContext(w http.ResponseWriter, r *http.Request, params map[string]string) *Context {
	return &Context{w: w, r: r, params: params}
}

// NewContext builds a Context outside the router, mostly for tests and adapters.
func NewContext(w http.ResponseWriter, r *http.Request, params map[string]string) *Context {
	return newContext(w, r, params)
}

func (c *Context) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }

func (c *Context) Done() <-chan struct{} { return c.r.Context().Done() }

func (c *Context) Err() error { return c.r.Context().Err() }

func (c *Context) Value(key any) any { return c.r.Context().Value(key) }

// SetValue stores a value on the request context.
func (c *Context) SetValue(key, val any) {
	c.r = c.r.WithContext(context.WithValue(c.r.Context(), key, val))
}

func (c *Context) Request() *http.Request { return c.r }

func (c *Context) ResponseWriter() http.ResponseWriter { return c.w }

// Param returns a URL parameter captured by the route pattern, or "".
func (c *Context) Param(key string) string {
	return c.params[key]
}
