// Package logging builds the slog loggers used by the server and CLI and
// carries a request-scoped logger through contexts.
//
// The summarization engine stores a logger tagged with the request ID in
// the context, and the completion adapters and extractors read it back:
//
//	ctx = logging.WithLogger(ctx, logging.WithRequestID(ctx, logger))
//	...
//	logging.FromContext(ctx).WarnContext(ctx, "Primary completion service failed")
package logging
