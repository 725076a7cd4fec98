// Package storage defines the hierarchical object store that backs session
// output and bundle reads, with a local filesystem and an in-memory backend.
//
// Paths are slash separated and relative to the backend root. A leading slash
// is ignored and any ".." segment is rejected with ErrInvalidPath, so a key
// taken from a request can never escape the root.
//
//	store, err := storage.NewLocal("./static/optimized")
//	if err != nil {
//		return err
//	}
//	if err := store.MkdirAll(ctx, "optimize_1718000000_a1b2c3d4e5f6"); err != nil {
//		return err
//	}
//	n, err := store.Put(ctx, "optimize_1718000000_a1b2c3d4e5f6/cat-optimized.webp", bytes.NewReader(data))
//
// Put overwrites existing objects; the last write wins. List is not recursive
// and reports directories as entries with IsDir set.
//
// Object storage lives in integration/storage/s3 and implements the same interface.
package storage
