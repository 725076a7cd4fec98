package imagebatch

import (
	"github.com/dmitrymomot/imagebatch/core/health"
	"github.com/dmitrymomot/imagebatch/core/router"
	"github.com/dmitrymomot/imagebatch/integration/database/redis"
	"github.com/dmitrymomot/imagebatch/middleware"
)

func (a *App) routes(r router.Router[*Context]) {
	r.Use(
		middleware.RequestID[*Context](),
		middleware.ClientIPWithConfig[*Context](middleware.ClientIPConfig{TrustProxy: a.config.TrustProxy}),
		middleware.LoggingWithLogger[*Context](a.logger),
		middleware.SecurityHeaders[*Context](),
		middleware.CORSWithConfig[*Context](middleware.CORSConfig{
			AllowOrigins: a.config.CORSAllowOrigins,
		}),
	)

	checks := []health.Check{{Name: "storage", Fn: a.store.Ping}}
	if a.redis != nil {
		checks = append(checks, health.Check{Name: "redis", Fn: redis.Healthcheck(a.redis)})
	}
	r.Get("/live", health.Liveness[*Context])
	r.Get("/ready", health.Readiness[*Context](a.logger, checks...))

	r.Route("/api", func(r router.Router[*Context]) {
		upload := r.With(middleware.BodyLimitWithSize[*Context](a.config.MaxRequestSize))
		upload.Post("/optimize", a.optimize)
		upload.Post("/rename", a.rename)

		r.Get("/download-zip", a.downloadZip)
		r.Get("/sessions", a.sessions)
	})

	public := a.store.PublicPath()
	r.Get(public+"/{session}/{filename}", a.serveFile)
	r.Head(public+"/{session}/{filename}", a.serveFile)
	r.Get(public+"/{filename}", a.serveFile)
	r.Head(public+"/{filename}", a.serveFile)
}
