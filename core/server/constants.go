package server

import "time"

const (
	// DefaultReadTimeout covers reading a whole upload batch.
	DefaultReadTimeout = 2 * time.Minute

	// DefaultReadHeaderTimeout bounds slow clients before the body starts.
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultWriteTimeout covers streaming a bundle back to the client.
	DefaultWriteTimeout = 5 * time.Minute

	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1 << 20
)
