package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/imagebatch/core/handler"
	"github.com/dmitrymomot/imagebatch/core/logger"
	"github.com/dmitrymomot/imagebatch/core/response"
)

// LoggingConfig configures the access log middleware.
type LoggingConfig struct {
	Skip   func(ctx handler.Context) bool
	Logger *slog.Logger
	// LogLevel for successful requests (default: Info).
	LogLevel slog.Level
	// LogRequest also logs when a request starts.
	LogRequest bool
	// SlowRequestThreshold logs slower requests at Warn (default: 10s).
	SlowRequestThreshold time.Duration
	Component            string
}

// Logging logs completed requests with slog.Default.
func Logging[C handler.Context]() handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{})
}

// LoggingWithLogger logs completed requests with log.
func LoggingWithLogger[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{Logger: log})
}

// LoggingWithConfig logs status, size and latency of every request.
// Errors returned by the response are logged with the status the error
// handler will render for them.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 10 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			req := ctx.Request()
			requestID, _ := GetRequestID(ctx)
			remote := req.RemoteAddr
			if ip, ok := GetClientIP(ctx); ok {
				remote = ip
			}

			if cfg.LogRequest {
				cfg.Logger.LogAttrs(req.Context(), cfg.LogLevel, "http request started",
					logger.Component(cfg.Component),
					logger.Event("request"),
					logger.RequestID(requestID),
					logger.Method(req.Method),
					logger.Path(req.URL.Path),
					logger.Query(req.URL.RawQuery),
					logger.RemoteAddr(remote),
				)
			}

			resp := next(ctx)
			if resp == nil {
				return nil
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
				err := resp(rec, r)

				status := rec.status
				if err != nil && !rec.wrote {
					status = response.AsHTTPError(err).Status
				}
				elapsed := time.Since(start)

				attrs := []slog.Attr{
					logger.Component(cfg.Component),
					logger.Event("response"),
					logger.RequestID(requestID),
					logger.Method(req.Method),
					logger.Path(req.URL.Path),
					logger.RemoteAddr(remote),
					logger.StatusCode(status),
					logger.BytesOut(rec.size),
					logger.Duration(elapsed),
				}

				level := cfg.LogLevel
				switch {
				case status >= http.StatusInternalServerError:
					level = slog.LevelError
					attrs = append(attrs, logger.Error(err))
				case status >= http.StatusBadRequest:
					level = slog.LevelWarn
					attrs = append(attrs, logger.Error(err))
				case elapsed > cfg.SlowRequestThreshold:
					level = slog.LevelWarn
					attrs = append(attrs, slog.Bool("slow_request", true))
				}

				cfg.Logger.LogAttrs(req.Context(), level, "http request completed", attrs...)
				return err
			}
		}
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int64
	wrote  bool
}

func (w *statusRecorder) WriteHeader(status int) {
	if !w.wrote {
		w.status = status
		w.wrote = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if !w.wrote {
		w.wrote = true
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)
	return n, err
}

func (w *statusRecorder) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *statusRecorder) Unwrap() http.ResponseWriter { return w.ResponseWriter }
