package response

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/dmitrymomot/imagebatch/core/handler"
)

// Inline streams rc to the client and closes it.
// The content type is taken from the name's extension.
func Inline(rc io.ReadCloser, name string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		defer rc.Close()

		w.Header().Set("Content-Type", contentType(name, ""))
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return nil
		}
		_, err := io.Copy(w, rc)
		return err
	}
}

// Attachment streams the body produced by write as a download named filename.
// The headers are committed before write runs, so write errors after the
// first byte can only be logged by the error handler.
func Attachment(filename, ctype string, write func(w io.Writer) error) handler.Response {
	filename = sanitizeFilename(filename)
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		w.Header().Set("Content-Type", contentType(filename, ctype))
		w.WriteHeader(http.StatusOK)
		return write(w)
	}
}

// Bytes serves data as a download named filename.
func Bytes(data []byte, filename, ctype string) handler.Response {
	return Attachment(filename, ctype, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

func contentType(name, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// sanitizeFilename prevents header injection through the disposition value.
func sanitizeFilename(name string) string {
	return strings.NewReplacer("\n", "", "\r", "", `"`, "'").Replace(name)
}
