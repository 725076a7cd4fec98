package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/imagebatch/core/handler"
)

// routeError is a router failure that carries its HTTP status.
type routeError struct {
	msg    string
	status int
}

func (e *routeError) Error() string   { return e.msg }
func (e *routeError) StatusCode() int { return e.status }

var (
	ErrNotFound         error = &routeError{msg: "not found", status: http.StatusNotFound}
	ErrMethodNotAllowed error = &routeError{msg: "method not allowed", status: http.StatusMethodNotAllowed}
	ErrNilResponse            = errors.New("nil response")
	ErrNoContextFactory       = errors.New("no context factory provided")
	ErrNilSubrouter           = errors.New("nil subrouter")
	ErrInvalidPattern         = errors.New("invalid route path pattern")
)

type statusCode interface {
	StatusCode() int
}

func defaultErrorHandler[C handler.Context](ctx C, err error) {
	w := ctx.ResponseWriter()
	if ww, ok := w.(*responseWriter); ok && ww.Written() {
		return
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}
	http.Error(w, err.Error(), status)
}

// PanicError is delivered to the error handler when a handler panics.
type PanicError interface {
	error
	Value() any
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string { return fmt.Sprintf("panic: %v", e.value) }
func (e *panicError) Value() any    { return e.value }
func (e *panicError) Stack() []byte { return e.stack }

func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
