// Package router adapts go-chi/chi to the typed handler contract.
//
// Routes are matched by chi; each matched request gets a context built by the
// configured factory, runs through the middleware chain and renders the
// returned handler.Response. Errors from responses, unmatched routes and
// recovered panics are all delivered to a single ErrorHandler.
//
//	r := router.New[*router.Context](
//		router.WithErrorHandler(response.JSONErrorHandler[*router.Context]),
//		router.WithMiddleware(middleware.RequestID[*router.Context]()),
//	)
//	r.Get("/optimized/{session}/{file}", serveFile)
//	r.Route("/api", func(api router.Router[*router.Context]) {
//		api.Post("/optimize", optimize)
//	})
package router
