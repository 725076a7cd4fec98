// Package handler defines the request handling contract shared by the router,
// middleware and application handlers.
//
// A handler receives a typed context and returns a Response; rendering is
// deferred so middleware can decorate the response before anything is written:
//
//	func health(ctx *router.Context) handler.Response {
//		return response.String("ALIVE")
//	}
//
// A Response that returns an error is passed to the router's ErrorHandler.
package handler
