package handler

import "net/http"

// Response writes headers, status and body. Returned errors go to the ErrorHandler.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc handles a request with a typed context.
type HandlerFunc[C Context] func(ctx C) Response

// ErrorHandler renders errors produced by handlers, responses and the router itself.
type ErrorHandler[C Context] func(ctx C, err error)

// Middleware wraps a HandlerFunc.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
