package router

import (
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/imagebatch/core/handler"
)

type mux[C handler.Context] struct {
	chi          chi.Router
	root         *chi.Mux
	parent       *mux[C]
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   ContextFactory[C]
	logger       *slog.Logger
	routed       bool
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	cm := chi.NewRouter()
	m := &mux[C]{
		chi:          cm,
		root:         cm,
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		m.newContext = func(w http.ResponseWriter, r *http.Request, params map[string]string) C {
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(newContext(w, r, params)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	cm.NotFound(m.fallback(ErrNotFound))
	cm.MethodNotAllowed(m.fallback(ErrMethodNotAllowed))
	return m
}

// ServeHTTP implements http.Handler.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.root.ServeHTTP(w, r)
}

func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodGet, pattern, h)
}

func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPost, pattern, h)
}

func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPut, pattern, h)
}

func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodDelete, pattern, h)
}

func (m *mux[C]) Head(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodHead, pattern, h)
}

func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	m.handle("", pattern, h)
}

func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	if m.routed {
		panic("router: all middlewares must be defined before routes")
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	child := m.child(m.chi.With())
	child.middlewares = append(child.middlewares, middlewares...)
	return child
}

func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	child := m.child(m.chi.With())
	if fn != nil {
		fn(child)
	}
	return child
}

func (m *mux[C]) Route(pattern string, fn func(r Router[C])) Router[C] {
	if fn == nil {
		panic(ErrNilSubrouter)
	}
	var child *mux[C]
	m.chi.Route(pattern, func(cr chi.Router) {
		child = m.child(cr)
		fn(child)
	})
	return child
}

func (m *mux[C]) child(cr chi.Router) *mux[C] {
	return &mux[C]{
		chi:          cr,
		root:         m.root,
		parent:       m,
		errorHandler: m.errorHandler,
		newContext:   m.newContext,
		logger:       m.logger,
	}
}

// handle registers h with the middleware of this router and all its ancestors,
// outermost first. An empty method registers for every method.
func (m *mux[C]) handle(method, pattern string, h handler.HandlerFunc[C]) {
	if pattern == "" || pattern[0] != '/' {
		panic(ErrInvalidPattern)
	}

	var mws []handler.Middleware[C]
	for cur := m; cur != nil; cur = cur.parent {
		cur.routed = true
		mws = append(append([]handler.Middleware[C]{}, cur.middlewares...), mws...)
	}

	fn := chain(mws, h)
	if method == "" {
		m.chi.Handle(pattern, m.serve(fn))
		return
	}
	m.chi.Method(method, pattern, m.serve(fn))
}

func (m *mux[C]) serve(fn handler.HandlerFunc[C]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ww := newResponseWriter(w)
		ctx := m.newContext(ww, r, urlParams(r))

		defer m.recover(ctx, ww)

		resp := fn(ctx)
		if resp == nil {
			m.errorHandler(ctx, ErrNilResponse)
			return
		}
		if err := resp(ww, ctx.Request()); err != nil {
			m.errorHandler(ctx, err)
		}
	}
}

// fallback answers unmatched requests through the root middleware so they are
// logged and tagged like any other request.
func (m *mux[C]) fallback(err error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn := chain(m.middlewares, func(C) handler.Response {
			return func(http.ResponseWriter, *http.Request) error { return err }
		})
		m.serve(fn)(w, r)
	}
}

func (m *mux[C]) recover(ctx C, ww *responseWriter) {
	p := recover()
	if p == nil {
		return
	}
	perr := &panicError{value: p, stack: debug.Stack()}
	if ww.Written() {
		m.logger.Error("panic after response written",
			slog.Any("value", p),
			slog.String("stack", string(perr.stack)),
			slog.String("path", ctx.Request().URL.Path),
			slog.Int("status", ww.Status()),
		)
		return
	}
	m.errorHandler(ctx, perr)
}

func chain[C handler.Context](mws []handler.Middleware[C], h handler.HandlerFunc[C]) handler.HandlerFunc[C] {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func urlParams(r *http.Request) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || len(rctx.URLParams.Keys) == 0 {
		return nil
	}
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if key == "*" || i >= len(rctx.URLParams.Values) {
			continue
		}
		params[key] = rctx.URLParams.Values[i]
	}
	return params
}
