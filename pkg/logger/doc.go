// Package logger builds *slog.Logger instances for the service.
//
// New applies functional options (format, level, output, static attributes,
// context extractors) and wraps the chosen slog handler with
// LogHandlerDecorator, which appends request-scoped attributes such as the
// request id to every record logged with a context.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, cfg.AppName),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
// Attribute helpers (Error, UserID, RequestID, Component, Event) keep key
// names consistent across packages. Middleware emits one access-log record
// per HTTP request.
package logger
