// Package logger builds configured slog.Logger instances with automatic
// context attribute injection.
//
// The factory wraps the chosen slog handler in a ContextHandler that runs
// registered ContextExtractor functions on every record. Combined with the
// tenant package's LoggerExtractor, every log line emitted while serving a
// tenant-scoped request carries the tenant_id attribute without handlers
// threading it through manually.
//
// Usage:
//
//	log := logger.New(
//		logger.WithProduction("yardbook"),
//		logger.WithContextExtractors(tenant.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "invoice generated") // includes tenant_id
package logger
