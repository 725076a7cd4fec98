// Package logger builds slog loggers and provides attribute helpers.
//
// New picks a handler from the options: text output for development, JSON for
// staging and production. Attribute helpers such as Error, Component and
// SessionID return an empty slog.Attr for zero inputs, which slog drops, so
// callers can pass them unconditionally:
//
//	log := logger.New(logger.WithProduction("imagebatch"))
//	log.Warn("transform failed",
//		logger.Component("batch"),
//		logger.SessionID(sess.ID),
//		logger.Filename(name),
//		logger.Error(err),
//	)
package logger
