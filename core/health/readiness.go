package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/imagebatch/core/handler"
	"github.com/dmitrymomot/imagebatch/core/logger"
	"github.com/dmitrymomot/imagebatch/core/response"
)

// CheckTimeout bounds each readiness check.
const CheckTimeout = 3 * time.Second

// Check is a named dependency probe.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// Readiness answers "READY" when every check passes, 503 otherwise.
// Checks with a nil Fn are ignored.
func Readiness[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		for _, c := range checks {
			if c.Fn == nil {
				continue
			}
			cctx, cancel := context.WithTimeout(ctx, CheckTimeout)
			err := c.Fn(cctx)
			cancel()
			if err != nil {
				log.ErrorContext(ctx, "readiness check failed",
					logger.Component(c.Name),
					logger.Error(err),
				)
				return response.Error(response.ErrServiceUnavailable.WithDetails(map[string]any{"check": c.Name}))
			}
		}
		return response.String("READY")
	}
}
