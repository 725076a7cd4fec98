package imagebatch

import (
	"bytes"
	"time"

	"github.com/dmitrymomot/imagebatch/core/handler"
	"github.com/dmitrymomot/imagebatch/core/logger"
	"github.com/dmitrymomot/imagebatch/core/response"
	"github.com/dmitrymomot/imagebatch/pkg/archive"
	"github.com/dmitrymomot/imagebatch/pkg/batch"
)

const fileCacheMaxAge = time.Hour

// optimize handles POST /api/optimize.
func (a *App) optimize(ctx *Context) handler.Response {
	up, err := a.readUpload(ctx)
	if err != nil {
		return a.fail(ctx, "optimize", err)
	}
	res, err := a.processor.Optimize(ctx, up.Inputs)
	if err != nil {
		return a.fail(ctx, "optimize", err)
	}
	return response.JSON(res.Files)
}

// rename handles POST /api/rename. The optional base_name field sets the
// output prefix.
func (a *App) rename(ctx *Context) handler.Response {
	up, err := a.readUpload(ctx)
	if err != nil {
		return a.fail(ctx, "rename", err)
	}
	res, err := a.processor.Rename(ctx, up.Inputs, up.BaseName)
	if err != nil {
		return a.fail(ctx, "rename", err)
	}
	return response.JSON(res.Files)
}

// downloadZip handles GET /api/download-zip?session=&files=.
// The bundle is built in memory so a failure can still be reported as JSON.
func (a *App) downloadZip(ctx *Context) handler.Response {
	scope := archive.Scope{
		SessionID: ctx.Query("session"),
		Files:     archive.ParseFilter(ctx.Query("files")),
	}

	var buf bytes.Buffer
	bundle, err := a.builder.Build(ctx, scope, &buf)
	if err != nil {
		return a.fail(ctx, "download", err)
	}
	return response.Bytes(buf.Bytes(), bundle.Name, "application/zip")
}

// sessions handles GET /api/sessions.
func (a *App) sessions(ctx *Context) handler.Response {
	list, err := a.store.Sessions(ctx)
	if err != nil {
		return a.fail(ctx, "sessions", err)
	}
	return response.JSON(list)
}

// serveFile streams one stored output.
func (a *App) serveFile(ctx *Context) handler.Response {
	rc, err := a.store.Open(ctx, ctx.Param("session"), ctx.Param("filename"))
	if err != nil {
		return a.fail(ctx, "serve", err)
	}
	return response.WithCache(response.Inline(rc, ctx.Param("filename")), fileCacheMaxAge)
}

func (a *App) readUpload(ctx *Context) (*batch.Upload, error) {
	mr, err := ctx.MultipartReader()
	if err != nil {
		return nil, err
	}
	return batch.ReadMultipart(mr, a.processor.MaxFileSize())
}

// fail logs err and renders its client-facing form.
func (a *App) fail(ctx *Context, op string, err error) handler.Response {
	httpErr := response.AsHTTPError(httpError(err))
	log := a.logger.With(logger.Event(op), logger.Error(err))
	switch {
	case httpErr.Status >= 500:
		log.ErrorContext(ctx, "request failed")
	default:
		log.InfoContext(ctx, "request rejected", logger.StatusCode(httpErr.Status))
	}
	return response.Error(httpErr)
}
