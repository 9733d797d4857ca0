// Package httpserver runs an http.Handler with graceful shutdown.
//
// Run blocks until the parent context is cancelled, SIGINT or SIGTERM is
// received, or Shutdown is called, then drains in-flight requests within the
// configured shutdown timeout. LivenessHandler and ReadinessHandler serve the
// /healthz and /readyz checks.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver
