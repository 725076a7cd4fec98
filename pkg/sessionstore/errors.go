package sessionstore

import "errors"

var (
	// ErrPrepare means a session location could not be created.
	ErrPrepare = errors.New("failed to prepare session location")
	// ErrInvalidName is returned for session or file names that are not a
	// single safe path segment.
	ErrInvalidName = errors.New("invalid name")
)
