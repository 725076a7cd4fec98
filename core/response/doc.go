// Package response builds handler.Response values for plain text, JSON and
// streamed file bodies, and renders errors through HTTPError.
//
// Handlers return a response instead of writing to the writer directly:
//
//	func listSessions(ctx *router.Context) handler.Response {
//		sessions, err := store.Sessions(ctx)
//		if err != nil {
//			return response.Error(response.ErrInternalServerError.WithError(err))
//		}
//		return response.JSON(sessions)
//	}
//
// # Errors
//
// HTTPError carries a status, a machine-readable code, a message and optional
// details. ErrorHandler renders it as plain text and JSONErrorHandler as JSON.
// Any other error is mapped through its StatusCode() method when present and
// falls back to 500:
//
//	r := router.New(router.WithErrorHandler(response.JSONErrorHandler[*router.Context]))
//
// # Files
//
// Inline streams a stored object with a content type derived from its name.
// Attachment streams a generated body (for example a zip bundle) with a
// Content-Disposition header:
//
//	return response.Attachment("optimized-images.zip", "application/zip", bundle.WriteTo)
package response
