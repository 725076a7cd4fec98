package archive

import "errors"

var (
	ErrNoMatchingFiles = errors.New("no matching files found")
	ErrNoFilesAdded    = errors.New("no files could be added to the bundle")
	ErrEnumerate       = errors.New("failed to enumerate files")
	ErrWrite           = errors.New("failed to write bundle")
)
