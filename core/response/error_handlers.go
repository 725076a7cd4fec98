package response

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/imagebatch/core/handler"
)

type statusCode interface {
	StatusCode() int
}

type writtenReporter interface {
	Written() bool
}

// AsHTTPError converts any error to an HTTPError.
// Errors exposing StatusCode() keep their status; everything else is a 500.
func AsHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	base, ok := httpErrorsByStatus[status]
	if !ok {
		base = newHTTPError(status, "error")
		if base.Message == "" {
			base = ErrInternalServerError
		}
	}
	return base.WithError(err)
}

// ErrorHandler renders errors as plain text.
func ErrorHandler[C handler.Context](ctx C, err error) {
	if alreadyWritten(ctx) {
		return
	}
	httpErr := AsHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Error(), httpErr.Status))
}

// JSONErrorHandler renders errors as JSON HTTPError bodies.
func JSONErrorHandler[C handler.Context](ctx C, err error) {
	if alreadyWritten(ctx) {
		return
	}
	httpErr := AsHTTPError(err)
	Render(ctx, JSONWithStatus(httpErr, httpErr.Status))
}

func alreadyWritten(ctx handler.Context) bool {
	wr, ok := ctx.ResponseWriter().(writtenReporter)
	return ok && wr.Written()
}
