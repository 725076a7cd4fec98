package storage

import "errors"

var (
	ErrInvalidPath        = errors.New("invalid path")
	ErrFileNotFound       = errors.New("file not found")
	ErrDirectoryNotFound  = errors.New("directory not found")
	ErrNotADirectory      = errors.New("not a directory")
	ErrInvalidConfig      = errors.New("invalid storage configuration")
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrOperationTimeout   = errors.New("operation timeout")
	ErrOperationCanceled  = errors.New("operation canceled")
	ErrServiceUnavailable = errors.New("storage service unavailable")
	ErrRequestTimeout     = errors.New("request timeout")
	ErrInvalidObjectState = errors.New("invalid object state")
)
