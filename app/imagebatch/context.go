package imagebatch

import (
	"mime/multipart"
	"net/http"

	"github.com/dmitrymomot/imagebatch/core/router"
)

// Context is the request context handed to every handler.
type Context struct {
	*router.Context
}

// Query returns the first value of the query parameter key.
func (c *Context) Query(key string) string {
	return c.Request().URL.Query().Get(key)
}

// MultipartReader streams the request body part by part.
func (c *Context) MultipartReader() (*multipart.Reader, error) {
	return c.Request().MultipartReader()
}

func newContext(w http.ResponseWriter, r *http.Request, params map[string]string) *Context {
	return &Context{Context: router.NewContext(w, r, params)}
}
