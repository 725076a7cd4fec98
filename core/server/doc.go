// Package server runs an http.Server with graceful shutdown.
//
// Run returns a func() error so the server can join an errgroup next to other
// long-running components and stop when the group's context is cancelled:
//
//	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, router))
//	return g.Wait()
//
// Timeouts default to values suited to large multipart uploads and can be set
// through Config (SERVER_* environment variables) or functional options.
package server
