// Package sessionstore maps session identifiers to output locations on a
// storage.Storage backend.
//
// Every batch gets its own session directory named
// {kind}_{unix}_{token} directly under the store root. A session is written
// only by the batch that created it, so no locking is needed across batches.
// Files placed directly under the root (the legacy flat layout) remain
// readable and are reported by TopLevel alongside session directories.
//
// Reads are lenient: any safe single path segment is accepted as a session
// name so legacy directories keep working, and a session that does not exist
// is simply empty.
package sessionstore
