// Package naming allocates session identifiers, rename indices and output
// filenames.
//
// Session IDs have the form {kind}_{unix seconds}_{token}, where token is 12
// hex characters from a random UUID. The time part keeps directory listings
// roughly chronological; the random part keeps concurrent sessions apart even
// within the same second.
//
// Rename indices come from a Counter. AtomicCounter is process local;
// RedisCounter shares one sequence between replicas through INCR. Both hand
// out 0, 1, 2, ... with no value observed twice.
package naming
