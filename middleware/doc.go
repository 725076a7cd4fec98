// Package middleware provides request ID, access logging, body limit and CORS
// middleware for the generic router.
//
// Every middleware is generic over the handler.Context type and comes with a
// default constructor and a WithConfig variant:
//
//	r := router.New(router.WithMiddleware(
//		middleware.RequestID[*router.Context](),
//		middleware.LoggingWithLogger[*router.Context](log),
//		middleware.CORSWithConfig[*router.Context](middleware.CORSConfig{
//			AllowMethods: []string{http.MethodGet, http.MethodPost},
//		}),
//	))
//	r.With(middleware.BodyLimitWithSize[*router.Context](256*middleware.MB)).
//		Post("/api/optimize", h.Optimize)
//
// Global middleware also runs for unmatched routes, so CORS preflight requests
// are answered even though no OPTIONS route exists.
package middleware
