package imagebatch

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/imagebatch/core/response"
	"github.com/dmitrymomot/imagebatch/core/storage"
	"github.com/dmitrymomot/imagebatch/middleware"
	"github.com/dmitrymomot/imagebatch/pkg/archive"
	"github.com/dmitrymomot/imagebatch/pkg/batch"
	"github.com/dmitrymomot/imagebatch/pkg/sessionstore"
)

var (
	ErrNoFilesProcessed = response.NewHTTPError(http.StatusBadRequest, "no_files_processed",
		"No files were processed. Upload at least one supported image.")
	ErrNoMatchingFiles = response.NewHTTPError(http.StatusNotFound, "no_matching_files",
		"No matching files found.")
	ErrNotMultipart = response.NewHTTPError(http.StatusBadRequest, "not_multipart",
		"Request body must be multipart/form-data.")
	ErrMalformedUpload = response.NewHTTPError(http.StatusBadRequest, "malformed_upload",
		"Upload could not be read.")
	ErrSessionUnavailable = response.NewHTTPError(http.StatusInternalServerError, "session_unavailable",
		"Could not prepare an output location.")
	ErrStorageUnavailable = response.NewHTTPError(http.StatusInternalServerError, "storage_unavailable",
		"Stored files could not be listed.")
	ErrFileNotFound = response.NewHTTPError(http.StatusNotFound, "file_not_found", "File not found.")
)

// httpError maps domain errors to client-facing errors. Causes of server
// errors are logged by the caller, never returned.
func httpError(err error) error {
	switch {
	case errors.Is(err, batch.ErrNoFilesProcessed):
		return ErrNoFilesProcessed
	case errors.Is(err, archive.ErrNoMatchingFiles), errors.Is(err, archive.ErrNoFilesAdded):
		return ErrNoMatchingFiles
	case errors.Is(err, http.ErrNotMultipart):
		return ErrNotMultipart
	case middleware.IsBodyTooLarge(err):
		return response.ErrRequestEntityTooLarge
	case errors.Is(err, batch.ErrMalformedUpload):
		return ErrMalformedUpload
	case errors.Is(err, sessionstore.ErrPrepare):
		return ErrSessionUnavailable
	case errors.Is(err, archive.ErrEnumerate):
		return ErrStorageUnavailable
	case errors.Is(err, storage.ErrFileNotFound), errors.Is(err, sessionstore.ErrInvalidName):
		return ErrFileNotFound
	}
	return response.ErrInternalServerError
}
