// Package batch drives one upload batch through validation, transform and
// persistence, and returns the per-file result ledger.
//
// A batch is processed in two phases. The prepare phase runs in field order
// and applies the cheap filters: accepted field role, filename present,
// extension allow-list, size limit. In rename mode it also draws the rename
// index, so indices follow upload order within a batch. The execute phase
// runs the surviving files concurrently (bounded by WithConcurrency):
// format sniffing and transform for optimize, passthrough for rename, then
// the write into the session.
//
// Every per-file failure is isolated: the file is logged and left out of
// the result. Only two conditions fail a batch: the session location cannot
// be prepared (sessionstore.ErrPrepare) and nothing succeeded
// (ErrNoFilesProcessed).
package batch
