// Package logger builds *slog.Logger values with functional options and
// provides attribute helpers shared by the scheduler, verifier and decoder.
//
// New picks a text or JSON handler, applies static attributes and wraps the
// handler with NewContextHandler, which adds attributes pulled from each
// record's context by registered ContextExtractor functions. The jwt package
// uses this to stamp request_id on verifier and decoder records.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "tickjwt"),
//	    logger.WithLevelName(os.Getenv("LOG_LEVEL")),
//	)
//
//	log.DebugContext(ctx, "verification completed",
//	    logger.Algorithm("RS256"),
//	    logger.Outcome(ok),
//	    logger.Ticks(elapsed),
//	)
//
// Development logs text at debug level; staging and production log JSON at
// info level. WithLevel, WithLevelName and the formatter options override
// the environment defaults when they come after WithEnvironment.
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
